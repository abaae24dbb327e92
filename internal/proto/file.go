package proto

import (
	"path"
	"strings"
	"time"
)

// FileTypeFolder is the fileType the backend uses for folders.
const FileTypeFolder = "folder"

// FileEntry mirrors one item of a directory listing.
type FileEntry struct {
	ID             string    `json:"id"`
	FileName       string    `json:"fileName"`
	FileType       string    `json:"fileType"`
	FileSize       int64     `json:"fileSize"`
	UploadedAt     time.Time `json:"uploadedAt"`
	IsStarred      bool      `json:"isStarred"`
	ParentFolderID *string   `json:"parentFolderId,omitempty"`
}

// IsFolder reports whether the entry is a folder.
func (f FileEntry) IsFolder() bool {
	return f.FileType == FileTypeFolder
}

// Extension returns the lower-cased extension without the dot.
func (f FileEntry) Extension() string {
	return strings.TrimPrefix(strings.ToLower(path.Ext(f.FileName)), ".")
}

// FileKind is the icon family of an entry.
type FileKind string

const (
	KindFolder   FileKind = "folder"
	KindPDF      FileKind = "pdf"
	KindDocument FileKind = "document"
	KindImage    FileKind = "image"
	KindOther    FileKind = "file"
)

// Kind classifies the entry by its type and extension.
func (f FileEntry) Kind() FileKind {
	if f.IsFolder() {
		return KindFolder
	}
	switch f.Extension() {
	case "pdf":
		return KindPDF
	case "doc", "docx":
		return KindDocument
	case "jpg", "jpeg", "png", "gif":
		return KindImage
	default:
		return KindOther
	}
}

// ListFilesResponse is returned by GET /files.
type ListFilesResponse struct {
	Files []FileEntry `json:"files"`
}

// CreateFolderRequest is the body of POST /files/folder. A nil parent
// creates the folder at the root.
type CreateFolderRequest struct {
	FolderName     string  `json:"folderName"`
	ParentFolderID *string `json:"parentFolderId"`
}

// RenameRequest is the body of PATCH /files/{id}/rename.
type RenameRequest struct {
	FileName string `json:"fileName"`
}

// DownloadResponse is returned by GET /files/{id}/download.
type DownloadResponse struct {
	DownloadURL string `json:"downloadUrl"`
}

// DownloadMode selects whether the signed URL forces an attachment or
// lets the browser render it inline.
type DownloadMode string

const (
	DownloadModeDownload DownloadMode = "download"
	DownloadModeView     DownloadMode = "view"
)
