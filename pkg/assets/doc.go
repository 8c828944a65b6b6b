// Package assets serves the static files under /pkg/: the site stylesheet
// and anything else the build drops next to it.
//
// Files come from a Store. The default store is embedded in the binary;
// DirStore reads a directory (used with the development CSS watcher) and
// S3Store reads a bucket prefix.
//
//	store, _ := assets.NewS3Store(ctx, assets.S3Config{Bucket: "site", Region: "ap-northeast-1"})
//	srv.Mount("/pkg/*", assets.Handler(store, logger))
package assets
