// Package dev provides development helpers for the homepage server.
//
// CSSWatcher watches the stylesheet on disk and, after each burst of
// changes settles, asks every live session to re-fetch it. The page keeps
// its state; only the <link id="leptos"> element is swapped.
package dev
