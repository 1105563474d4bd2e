// Package semsearch is an in-process Go client for the semsearch vector index:
// it embeds and stores documents in a Valkey/Redis search index, runs
// similarity search and optionally generates short titles for the hits.
//
//	client, _ := semsearch.New(ctx,
//	    semsearch.WithRedis("localhost:6379", ""),
//	    semsearch.WithNamespace("dev", "semantic-search"),
//	    semsearch.WithOpenAI(os.Getenv("OPENAI_API_KEY")),
//	)
//	defer client.Close()
//
//	_, _ = client.Store(ctx, []semsearch.Document{{Text: "Vector databases store embeddings."}})
//	hits, _ := client.Search(ctx, "what stores embeddings?", 5)
//	titled, _ := client.SearchWithTitles(ctx, "what stores embeddings?", 5)
//
// Demo never touches the database or the provider:
//
//	demoHits := client.Demo(ctx, "pinecone", 3)
package semsearch
