// Package partsdex provides an embedded Go client for the vehicle parts catalog.
// It reads the catalog table directly from MySQL or SQLite, applying the same
// filtering and ranking as the HTTP service.
//
//	client, _ := partsdex.New(ctx, partsdex.WithSQLite("/var/lib/partsdex/catalog.db"))
//	defer client.Close()
//
//	products, _ := client.SearchProducts(ctx, partsdex.SearchParams{Make: "Ford", Year: 2012})
//	makes, _ := client.Makes(ctx, "fo")
//	hints, _ := client.Suggestions(ctx, "ABC")
package partsdex
