package api

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"regexp"
	"strings"
)

var markdownImageRef = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)\)`)

type imageUploadJob struct {
	taskId   string
	localRef string
	baseDir  string
	reply    chan imageUploadResult
}

type imageUploadResult struct {
	url string
	err error
}

// handleImageUpload is the WorkHandler internal.WorkerPool[imageUploadJob]
// dispatches jobs to; it is not called directly.
func (s *Server) handleImageUpload(ctx context.Context, job imageUploadJob) {
	localPath := filepath.Join(job.baseDir, job.localRef)
	key := fmt.Sprintf("%s/%s", job.taskId, job.localRef)
	contentType := mime.TypeByExtension(filepath.Ext(localPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	url, err := s.upload.Upload(ctx, key, localPath, contentType)
	job.reply <- imageUploadResult{url: url, err: err}
}

// rewriteImages replaces every local-looking `![alt](path)` reference in
// markdown with an <img> tag pointing at the uploaded object-store URL.
// A per-image upload failure is logged and leaves that reference
// untouched — it never fails the whole response.
func (s *Server) rewriteImages(ctx context.Context, taskId, markdown, baseDir string) string {
	if s.images == nil {
		return markdown
	}
	return markdownImageRef.ReplaceAllStringFunc(markdown, func(match string) string {
		groups := markdownImageRef.FindStringSubmatch(match)
		alt, ref := groups[1], groups[2]
		if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
			return match
		}

		reply := make(chan imageUploadResult, 1)
		job := imageUploadJob{taskId: taskId, localRef: ref, baseDir: baseDir, reply: reply}
		if !s.images.Push(job) {
			return match
		}
		select {
		case res := <-reply:
			if res.err != nil {
				s.log.Warn("image upload failed, leaving reference untouched", "ref", ref, "err", res.err)
				return match
			}
			return fmt.Sprintf(`<img src="%s" alt="%s">`, res.url, alt)
		case <-ctx.Done():
			return match
		}
	})
}
