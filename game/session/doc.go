// Package session tracks a single player's progress through the level set.
//
// A Session owns one engine and the level source it loads from. On top of
// the engine it adds level progression: once a level is won the session can
// advance to the next numbered level, and it remembers which levels were
// completed while the process runs.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs so log lines from one play-through can be
// told apart.
//
// Concurrency:
//
// A Session is not safe for concurrent use. The game service serialises
// access to it.
//
// Usage:
//
//	sess, err := session.New(manager, 1)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	outcome, err := sess.Do(engine.MoveRight)
//	if sess.Engine().HasWon() && sess.HasNextLevel() {
//		err = sess.Advance()
//	}
package session
