// Package opencodesdk provides a Go SDK for the OpenCode server.
//
// The SDK can connect to an already running server or spawn and supervise
// its own server process, then drive it over the HTTP API: sessions,
// messages with streaming responses, file and search operations, and the
// server's typed event channel.
//
// # Basic Usage
//
// With no base URL, New spawns an opencode server on an OS-assigned port
// and tears it down on Close:
//
//	ctx := context.Background()
//
//	client, err := opencodesdk.New(ctx,
//	    opencodesdk.WithDirectory("/path/to/project"),
//	    opencodesdk.WithDefaultModel("anthropic", "claude-sonnet-4-5"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	session, err := client.CreateSession(ctx, "refactor")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	reply, err := session.Send(ctx, "Explain this repository")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(reply.Text())
//
// # Streaming
//
// SendStream delivers the response's parts as the server produces them:
//
//	ms := session.SendStream(ctx, "Write a README")
//	for part := range ms.Parts() {
//	    if text, ok := part.(*opencodesdk.TextPart); ok {
//	        fmt.Print(text.Text)
//	    }
//	}
//	result, err := ms.Result()
//
// # Events
//
// SubscribeEvents opens a dedicated subscription to the server's event
// channel:
//
//	events, err := client.SubscribeEvents(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer events.Close()
//
//	for event := range events.All() {
//	    switch e := event.(type) {
//	    case *opencodesdk.SessionIdleEvent:
//	        fmt.Println("session done:", e.SessionID)
//	    case *opencodesdk.PermissionAskedEvent:
//	        // reply via client.ReplyPermission
//	    }
//	}
//
// # Connecting to an Existing Server
//
//	client, err := opencodesdk.New(ctx,
//	    opencodesdk.WithBaseURL("http://127.0.0.1:4096"),
//	    opencodesdk.WithBasicAuth("user", "pass"),
//	)
package opencodesdk
