// Package objectstore provides the S3-compatible image upload used by
// the API gateway's result image-rewrite feature: when a client asks for
// a Markdown result with embedded images made externally servable, the
// gateway uploads each local image the engine produced and rewrites the
// Markdown to reference the uploaded URL instead of a local path.
package objectstore
