package client

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/driveterm/drive/internal/proto"
)

// ListFiles returns the entries of folderID (the root when empty) filtered
// by view.
func (c *Client) ListFiles(ctx context.Context, folderID string, view proto.View) ([]proto.FileEntry, error) {
	query := url.Values{}
	if folderID != "" {
		query.Set("folderId", folderID)
	}
	if view == "" {
		view = proto.ViewHome
	}
	query.Set("view", string(view))

	rsp, err := c.get(ctx, "/files", query)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	var out proto.ListFilesResponse
	if err := decodeResponse(rsp, &out); err != nil {
		return nil, err
	}
	if out.Files == nil {
		out.Files = []proto.FileEntry{}
	}
	return out.Files, nil
}

// CreateFolder creates name inside parentID (the root when empty).
func (c *Client) CreateFolder(ctx context.Context, name, parentID string) (*proto.MessageResponse, error) {
	req := proto.CreateFolderRequest{FolderName: name}
	if parentID != "" {
		req.ParentFolderID = &parentID
	}
	rsp, err := c.post(ctx, "/files/folder", jsonBody(req), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	var out proto.MessageResponse
	if err := decodeResponse(rsp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadParams describes a single file upload.
type UploadParams struct {
	// Name is the file name reported to the server.
	Name string
	Body io.Reader
	// ParentFolderID is the destination folder; empty means the root.
	ParentFolderID string
	// OnProgress, if set, receives the running count of bytes sent.
	OnProgress func(sent int64)
}

// UploadFile streams a multipart upload to POST /files/upload.
func (c *Client) UploadFile(ctx context.Context, params UploadParams) (*proto.MessageResponse, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := writeUploadForm(mw, params)
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	headers := http.Header{"Content-Type": []string{mw.FormDataContentType()}}
	rsp, err := c.sendStream(ctx, http.MethodPost, "/files/upload", nil, pr, headers)
	if err != nil {
		pr.CloseWithError(err)
		return nil, fmt.Errorf("failed to upload %s: %w", params.Name, err)
	}
	var out proto.MessageResponse
	if err := decodeResponse(rsp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func writeUploadForm(mw *multipart.Writer, params UploadParams) error {
	part, err := mw.CreateFormFile("file", params.Name)
	if err != nil {
		return err
	}
	var dst io.Writer = part
	if params.OnProgress != nil {
		dst = &progressWriter{w: part, fn: params.OnProgress}
	}
	if _, err := io.Copy(dst, params.Body); err != nil {
		return err
	}
	if params.ParentFolderID != "" {
		if err := mw.WriteField("parentFolderId", params.ParentFolderID); err != nil {
			return err
		}
	}
	return nil
}

type progressWriter struct {
	w  io.Writer
	n  int64
	fn func(int64)
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.n += int64(n)
	p.fn(p.n)
	return n, err
}

// DownloadURL resolves the signed URL of a file.
func (c *Client) DownloadURL(ctx context.Context, fileID string, mode proto.DownloadMode) (string, error) {
	query := url.Values{}
	if mode != "" {
		query.Set("mode", string(mode))
	}
	rsp, err := c.get(ctx, "/files/"+url.PathEscape(fileID)+"/download", query)
	if err != nil {
		return "", fmt.Errorf("failed to resolve download URL: %w", err)
	}
	var out proto.DownloadResponse
	if err := decodeResponse(rsp, &out); err != nil {
		return "", err
	}
	if out.DownloadURL == "" {
		return "", fmt.Errorf("failed to resolve download URL: server returned an empty URL")
	}
	return out.DownloadURL, nil
}

// DownloadFolder streams a ZIP archive of the folder. The caller must close
// the returned reader.
func (c *Client) DownloadFolder(ctx context.Context, folderID string) (io.ReadCloser, error) {
	rsp, err := c.sendStream(ctx, http.MethodGet, "/files/"+url.PathEscape(folderID)+"/download-folder", nil, nil, http.Header{
		"Accept": []string{"application/zip"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download folder: %w", err)
	}
	if err := checkResponse(rsp); err != nil {
		rsp.Body.Close()
		return nil, err
	}
	return rsp.Body, nil
}

// Fetch downloads an absolute URL such as the one returned by
// [Client.DownloadURL]. Signed URLs usually point at object storage, so the
// bearer token is only attached when the host matches the API host.
func (c *Client) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid download URL: %w", err)
	}
	if !u.IsAbs() {
		u = c.base.ResolveReference(u)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	if u.Host == c.base.Host {
		c.applyAuth(req)
	}
	rsp, err := c.doReq(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download: %w", err)
	}
	if err := checkResponse(rsp); err != nil {
		rsp.Body.Close()
		return nil, err
	}
	return rsp.Body, nil
}

// DeleteFile moves a file to the trash, or removes it for good when
// permanent is set.
func (c *Client) DeleteFile(ctx context.Context, fileID string, permanent bool) (*proto.MessageResponse, error) {
	var query url.Values
	if permanent {
		query = url.Values{"permanent": []string{"true"}}
	}
	rsp, err := c.delete(ctx, "/files/"+url.PathEscape(fileID), query)
	if err != nil {
		return nil, fmt.Errorf("failed to delete: %w", err)
	}
	var out proto.MessageResponse
	if err := decodeResponse(rsp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RestoreFile moves a trashed file back to where it was.
func (c *Client) RestoreFile(ctx context.Context, fileID string) (*proto.MessageResponse, error) {
	rsp, err := c.patch(ctx, "/files/"+url.PathEscape(fileID)+"/restore", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to restore: %w", err)
	}
	var out proto.MessageResponse
	if err := decodeResponse(rsp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleStar flips the starred flag. The returned message says which way.
func (c *Client) ToggleStar(ctx context.Context, fileID string) (*proto.MessageResponse, error) {
	rsp, err := c.patch(ctx, "/files/"+url.PathEscape(fileID)+"/star", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to update star status: %w", err)
	}
	var out proto.MessageResponse
	if err := decodeResponse(rsp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EmptyTrash permanently deletes everything in the trash.
func (c *Client) EmptyTrash(ctx context.Context) (*proto.MessageResponse, error) {
	rsp, err := c.delete(ctx, "/files/trash/empty", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to empty trash: %w", err)
	}
	var out proto.MessageResponse
	if err := decodeResponse(rsp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RenameFile renames a file or folder.
func (c *Client) RenameFile(ctx context.Context, fileID, name string) (*proto.MessageResponse, error) {
	rsp, err := c.patch(ctx, "/files/"+url.PathEscape(fileID)+"/rename", jsonBody(proto.RenameRequest{FileName: name}))
	if err != nil {
		return nil, fmt.Errorf("failed to rename: %w", err)
	}
	var out proto.MessageResponse
	if err := decodeResponse(rsp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
