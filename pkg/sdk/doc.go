// Package resumatch provides a Go client for the resumatch semantic
// resume search service.
//
//	client := resumatch.New("http://localhost:8080",
//	    resumatch.WithAPIKey("secret"),
//	)
//
//	report, _ := client.Ingest(ctx, []resumatch.Resume{
//	    {ID: "r1", Role: "backend engineer", Years: 6,
//	        Skills: []string{"go", "redis"}, Summary: "..."},
//	})
//
//	matches, _ := client.Search(ctx, resumatch.SearchRequest{
//	    Query:   "golang engineer with redis experience",
//	    Filters: map[string]any{"years": map[string]any{"$gte": 3}},
//	    TopK:    5,
//	})
package resumatch
