package user

type RoleCode string

const (
	// RoleCodeAdmin may mutate the product catalog.
	RoleCodeAdmin RoleCode = "admin"
	// RoleCodeStaff has read-only access to authenticated surfaces.
	RoleCodeStaff RoleCode = "staff"
)

func ParseRoleCode(code string) (RoleCode, error) {
	switch RoleCode(code) {
	case RoleCodeAdmin:
		return RoleCodeAdmin, nil
	case RoleCodeStaff:
		return RoleCodeStaff, nil
	}
	return "", ErrInvalidRoleCode
}
