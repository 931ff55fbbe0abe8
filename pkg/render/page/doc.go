// Package page renders the HTML topic page: breadcrumb, map, context panel
// and the tooltip and zoom/pan script.
//
// A page is in exactly one [State]. NoSelection and the two error states
// are terminal: they carry a message and no map, and the only way out is
// navigating to another URL.
package page
