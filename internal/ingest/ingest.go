// Package ingest discovers the PDF files a batch run will process.
package ingest

import "os"

// FileResult is one discovered file.
type FileResult struct {
	Path    string
	Name    string
	Size    int64
	FileExt string
}

// DirStats summarizes a directory listing.
type DirStats struct {
	Scanned uint32 // directory entries looked at
	Matched uint32 // PDFs returned
	Skipped uint32 // hidden files, subdirectories and other extensions
	Failed  uint32 // entries that could not be stat'ed
}

func fileResult(path string, info os.FileInfo, ext string) FileResult {
	return FileResult{
		Path:    path,
		Name:    info.Name(),
		Size:    info.Size(),
		FileExt: ext,
	}
}
