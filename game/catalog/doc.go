// Package catalog manages the directory of Sokoban level files.
//
// The catalog package handles:
//   - Loading levels by number from "<N>.txt" files
//   - Caching parsed levels and handing out independent copies
//   - Listing available levels with their dimensions and box counts
//   - Watching the directory and invalidating edited levels
//
// Level Files:
//
// Levels are plain text, one row per line. Level 1 is "1.txt", level 2 is
// "2.txt", and so on. Files with other names are ignored.
//
// Usage:
//
//	manager, err := catalog.NewManager("levels")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Manager implements level.Source
//	eng, err := engine.NewEngine(manager, 1)
//
//	// List available levels
//	infos, err := manager.List()
//
//	// Pick up edits made while the game runs
//	watcher, err := manager.Watch()
//	for id := range watcher.Events {
//		...
//	}
package catalog
