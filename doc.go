// Package commander runs shell commands as managed sessions.
//
// A command is started with a caller timeout. When it finishes in time the
// caller gets its full output; otherwise the process keeps running in the
// background and its output can be drained later by pid. Running sessions
// can be listed and force-terminated, and exited ones stay readable in a
// bounded history. A persistent blocklist rejects commands by their first
// token before they are spawned.
//
// The Service facade wires the session manager, the blocklist policy and the
// action services:
//
//	srv, _ := commander.New(ctx, commander.WithConfig(cfg))
//	defer srv.Close(ctx)
//	out, _ := srv.Actions().Dispatch(ctx, "system/terminal", "execute",
//		map[string]interface{}{"command": "ls -la", "timeoutMs": 2000})
package commander
