package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"github.com/JoelVR2k/InventoryManager/internal/client"
	domproduct "github.com/JoelVR2k/InventoryManager/internal/domain/product"
)

const usage = `invctl <command> [flags]

Commands:
  list        list products (paginated)
  get         show one product
  create      create a product
  update      update a product
  delete      delete a product (asks for confirmation)
  outofstock  zero the stock of a product
  instock     restock a product
  metrics     show the per-category stock report

Environment:
  INVENTORY_API_URL   base URL of the API (default http://localhost:8080)
  INVENTORY_EMAIL     login email for mutating commands
  INVENTORY_PASSWORD  login password for mutating commands
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "invctl:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	_ = godotenv.Load()

	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("missing command")
	}

	baseURL := os.Getenv("INVENTORY_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	c := client.New(baseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch args[0] {
	case "list":
		return runList(ctx, c, args[1:])
	case "get":
		return runGet(ctx, c, args[1:])
	case "create":
		return runCreate(ctx, c, args[1:])
	case "update":
		return runUpdate(ctx, c, args[1:])
	case "delete":
		return runDelete(ctx, c, args[1:], os.Stdin)
	case "outofstock":
		return runStock(ctx, c, args[1:], true)
	case "instock":
		return runStock(ctx, c, args[1:], false)
	case "metrics":
		return runMetrics(ctx, c)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	}

	fmt.Fprint(os.Stderr, usage)
	return fmt.Errorf("unknown command %q", args[0])
}

// login authenticates with the credentials from the environment. Mutating
// commands need it; reads do not.
func login(ctx context.Context, c *client.Client) error {
	email := os.Getenv("INVENTORY_EMAIL")
	password := os.Getenv("INVENTORY_PASSWORD")
	if email == "" || password == "" {
		return fmt.Errorf("set INVENTORY_EMAIL and INVENTORY_PASSWORD to modify the catalog")
	}
	_, err := c.Login(ctx, email, password)
	return err
}

func runList(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	name := fs.String("name", "", "filter by name (contains)")
	category := fs.String("category", "", "filter by category")
	available := fs.String("available", "", "filter by availability: in or out")
	page := fs.Int("page", 1, "page to show (1-based)")
	sortKey := fs.String("sort", domproduct.SortByID, "sort column")
	asc := fs.Bool("asc", false, "sort ascending")
	if err := fs.Parse(args); err != nil {
		return err
	}

	listing := client.NewListing(c)
	listing.Query.Name = *name
	listing.Query.Category = *category
	switch *available {
	case "in":
		listing.Query.Availability = client.AvailabilityInStock
	case "out":
		listing.Query.Availability = client.AvailabilityOutOfStock
	}
	listing.Query.SetPage(*page)
	listing.Query.SortKey = *sortKey
	listing.Query.Desc = !*asc

	if err := listing.Refresh(ctx); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK\tLEVEL\tEXPIRES")
	for _, row := range listing.Rows() {
		name := row.Name
		if row.Strike {
			name += " (out)"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%d\t%s\t%s\n",
			row.ID, name, row.Category, row.UnitPrice, row.QuantityInStock, row.StockLevel, row.Expiration)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("page %d of %d (%d products)\n", listing.Query.Page, listing.TotalPages(), listing.TotalItems())
	return nil
}

func runGet(ctx context.Context, c *client.Client, args []string) error {
	id, err := idArg(args)
	if err != nil {
		return err
	}
	p, err := c.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	printProduct(p)
	return nil
}

func runCreate(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	f := bindFormFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := login(ctx, c); err != nil {
		return err
	}

	form := client.NewCreateForm(c, nil, nil)
	form.Fields = *f
	if err := form.Submit(ctx); err != nil {
		return formError(form, err)
	}
	fmt.Printf("created; product is on page %d\n", form.Destination)
	return nil
}

func runUpdate(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	id := fs.Int64("id", 0, "product id")
	f := bindFormFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("-id is required")
	}
	if err := login(ctx, c); err != nil {
		return err
	}

	form := client.NewEditForm(c, nil, nil, *id)
	if err := form.Load(ctx); err != nil {
		return err
	}
	applyFormFlags(fs, form, f)
	if err := form.Submit(ctx); err != nil {
		return formError(form, err)
	}
	fmt.Println("updated")
	return nil
}

func runDelete(ctx context.Context, c *client.Client, args []string, in io.Reader) error {
	id, err := idArg(args)
	if err != nil {
		return err
	}

	p, err := c.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if !confirmDelete(in, os.Stdout, p.Name) {
		fmt.Println("aborted")
		return nil
	}

	if err := login(ctx, c); err != nil {
		return err
	}
	if err := c.DeleteProduct(ctx, id); err != nil {
		return err
	}
	fmt.Println("deleted")
	return nil
}

func runStock(ctx context.Context, c *client.Client, args []string, out bool) error {
	fs := flag.NewFlagSet("stock", flag.ContinueOnError)
	id := fs.Int64("id", 0, "product id")
	quantity := fs.Int64("quantity", 1, "stock quantity (instock only)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("-id is required")
	}
	if err := login(ctx, c); err != nil {
		return err
	}

	var p *client.Product
	var err error
	if out {
		p, err = c.MarkOutOfStock(ctx, *id)
	} else {
		p, err = c.MarkInStock(ctx, *id, *quantity)
	}
	if err != nil {
		return err
	}
	printProduct(p)
	return nil
}

func runMetrics(ctx context.Context, c *client.Client) error {
	m := client.NewMetrics(c)
	if err := m.Refresh(ctx); err != nil {
		return err
	}
	report := m.Report()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tUNITS\tVALUE\tAVG PRICE")
	for _, row := range report.Categories {
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\n",
			row.Category, row.TotalUnitsInStock, row.TotalValueInStock, row.AverageUnitPrice)
	}
	fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\n",
		report.Overall.Category, report.Overall.TotalUnitsInStock,
		report.Overall.TotalValueInStock, report.Overall.AverageUnitPrice)
	return w.Flush()
}

// confirmDelete asks before a destructive action and accepts y/yes.
func confirmDelete(in io.Reader, out io.Writer, name string) bool {
	fmt.Fprintf(out, "delete %q? [y/N] ", name)
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

func idArg(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one product id")
	}
	return strconv.ParseInt(args[0], 10, 64)
}

func bindFormFlags(fs *flag.FlagSet) *client.FormFields {
	f := &client.FormFields{}
	fs.StringVar(&f.Name, "name", "", "product name")
	fs.StringVar(&f.Category, "category", "", "category: electronics, food or clothing")
	fs.StringVar(&f.UnitPrice, "price", "", "unit price")
	fs.StringVar(&f.QuantityInStock, "stock", "", "quantity in stock")
	fs.StringVar(&f.ExpirationDate, "expires", "", "expiration date (yyyy-mm-dd)")
	return f
}

// applyFormFlags overwrites only the fields the user actually passed, so an
// update can change a single attribute.
func applyFormFlags(fs *flag.FlagSet, form *client.Form, f *client.FormFields) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			form.Fields.Name = f.Name
		case "category":
			form.Fields.Category = f.Category
		case "price":
			form.Fields.UnitPrice = f.UnitPrice
		case "stock":
			form.Fields.QuantityInStock = f.QuantityInStock
		case "expires":
			form.Fields.ExpirationDate = f.ExpirationDate
		}
	})
}

func formError(form *client.Form, err error) error {
	if len(form.Errors) == 0 {
		return err
	}
	var sb strings.Builder
	sb.WriteString("invalid input:")
	for field, msg := range form.Errors {
		sb.WriteString("\n  " + field + ": " + msg)
	}
	return fmt.Errorf("%s", sb.String())
}

func printProduct(p *client.Product) {
	fmt.Printf("id:        %d\n", p.ID)
	fmt.Printf("name:      %s\n", p.Name)
	fmt.Printf("category:  %s\n", p.Category)
	fmt.Printf("price:     %.2f\n", p.UnitPrice)
	fmt.Printf("stock:     %d (%s)\n", p.QuantityInStock, domproduct.LevelFor(p.QuantityInStock))
	if p.ExpirationDate != "" {
		fmt.Printf("expires:   %s\n", p.ExpirationDate)
	}
}
