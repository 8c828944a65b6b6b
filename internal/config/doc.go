// Package config loads the homepage server configuration.
//
// The configuration lives in homepage.yaml. Every field is optional; a
// missing file yields the defaults. Unknown keys are rejected so typos do
// not silently fall back to defaults.
//
//	server:
//	  address: ":8080"
//	  shutdownTimeout: 30s
//	render:
//	  lang: ja
//	  minify: true
//	assets:
//	  source: s3
//	  s3:
//	    bucket: homepage-assets
//	    region: ap-northeast-1
//	log:
//	  level: info
//	  format: json
//	metrics:
//	  enabled: true
//	dev:
//	  watchCSS: false
//
// HOMEPAGE_ADDR, HOMEPAGE_LOG_LEVEL and HOMEPAGE_ENV override the file.
package config
