// Package searchproxy is a Go client for the searchproxy HTTP API.
//
//	client, _ := searchproxy.New("http://localhost:8081",
//	    searchproxy.WithAPIKey(os.Getenv("SEARCHPROXY_API_KEY")),
//	)
//	hits, _ := client.Search(ctx, "golang generics", 10)
//	images, _ := client.SearchImages(ctx, "gopher", 20)
//	ans, _ := client.Answer(ctx, "what is a goroutine?", 3)
//
// Non-2xx responses are returned as *APIError. Use errors.Is with the
// exported sentinels (ErrNoSearchResults, ErrAnswerQuotaExceeded, ...) to
// branch on the error class.
package searchproxy
