// Package shopsense embeds the shopsense ranking engine in a Go program.
//
// A Client indexes a product catalog once and then answers searches,
// chat-style shopping questions and recommendations in-process. User
// interactions go to a history backend: in-memory by default, or Redis,
// Valkey or an embedded Badger directory.
//
//	client, _ := shopsense.New(ctx,
//	    shopsense.WithCatalogFile("catalog.yaml"),
//	    shopsense.WithBadger("/var/lib/shopsense"),
//	)
//	defer client.Close()
//
//	hits, _ := client.Search(ctx, "u1", "warm hoodie")
//	_ = client.Track(ctx, "u1", shopsense.EventView, hits[0].ID)
//	recs, _ := client.Recommend(ctx, "u1", hits[0].ID)
//	reply, _ := client.Chat(ctx, "u1", "red jacket")
package shopsense
