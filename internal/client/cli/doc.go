// Package cli provides the interactive TripKeeper terminal client.
//
// It wires configuration, the REST API client, the trip store, the photo
// feed and the view controller behind a line-oriented REPL. The client has
// two sections, mirroring the two entries of a navigation bar:
//
//   - trips: gallery, trip detail with photo management, create and edit forms
//   - photos: the paginated photo feed with a fullscreen viewer
//
// The feed is scrolled with 'more'. The terminal height defines the visible
// window, and the feed loads its next page once the window comes within the
// configured threshold of the end of the loaded photos.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
