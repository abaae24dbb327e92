package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/MakeNowJust/heredoc"
	"github.com/atotto/clipboard"
	"github.com/driveterm/drive/internal/app"
	"github.com/driveterm/drive/internal/drive"
	"github.com/driveterm/drive/internal/proto"
	"github.com/driveterm/drive/internal/pubsub"
	"github.com/driveterm/drive/internal/session"
	"github.com/spf13/cobra"
)

// copyToClipboard is swapped in tests.
var copyToClipboard = clipboard.WriteAll

func init() {
	for _, c := range []*cobra.Command{lsCmd, mkdirCmd, uploadCmd, rmCmd, restoreCmd, starCmd, renameCmd, downloadCmd, viewCmd} {
		c.Flags().StringP("folder", "f", "", "Folder path from the root, e.g. docs/2024")
	}
	for _, c := range []*cobra.Command{lsCmd, rmCmd, starCmd, renameCmd, downloadCmd, viewCmd} {
		c.Flags().String("view", string(proto.ViewHome), "Listing to use: home, recent, starred or trash")
	}
	restoreCmd.Flags().String("view", string(proto.ViewTrash), "Listing to use: home, recent, starred or trash")

	lsCmd.Flags().StringP("search", "s", "", "Only show names containing this text")
	lsCmd.Flags().Bool("json", false, "Print the listing as JSON")
	rmCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	emptyTrashCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	downloadCmd.Flags().StringP("output", "o", "", "Directory to save into (defaults to the configured download directory)")

	rootCmd.AddCommand(lsCmd, mkdirCmd, uploadCmd, rmCmd, restoreCmd, starCmd, renameCmd, downloadCmd, viewCmd, emptyTrashCmd)
}

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List files",
	Example: heredoc.Doc(`
		# List the root of My Drive
		drive ls

		# List a folder
		drive ls -f docs/2024

		# Starred PDFs as JSON
		drive ls --view starred --search .pdf --json
	`),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDashboard(cmd, func(a *app.App, d *drive.Dashboard) error {
			search, _ := cmd.Flags().GetString("search")
			d.SetSearch(search)
			files := d.Filtered()

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(files)
			}
			printListing(cmd.OutOrStdout(), d.Snapshot(), files)
			return nil
		})
	},
}

var mkdirCmd = &cobra.Command{
	Use:   "mkdir NAME",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDashboard(cmd, func(a *app.App, d *drive.Dashboard) error {
			msg, err := d.CreateFolder(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		})
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload PATH...",
	Short: "Upload files",
	Long:  "Upload files one at a time. A failed file does not stop the rest. Patterns support ** and are expanded by drive, so quote them.",
	Example: heredoc.Doc(`
		drive upload report.pdf notes.txt
		drive upload -f docs 'scans/**/*.pdf'
	`),
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := drive.ExpandPaths(args)
		if err != nil {
			return err
		}
		return withDashboard(cmd, func(a *app.App, d *drive.Dashboard) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			events := d.Uploads().Subscribe(ctx)
			done := make(chan struct{})
			go func() {
				defer close(done)
				printUploadProgress(cmd.ErrOrStderr(), events)
			}()

			res := d.Upload(cmd.Context(), paths)
			cancel()
			<-done

			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %d of %d files\n", len(res.Uploaded), len(paths))
			return res.Err()
		})
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Move a file or folder to the trash",
	Long:  "Move a file or folder to the trash. With --view trash the item is deleted for good.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDashboard(cmd, func(a *app.App, d *drive.Dashboard) error {
			entry, err := lookup(d, args[0])
			if err != nil {
				return err
			}
			if yes, _ := cmd.Flags().GetBool("yes"); !yes && !newPrompter(cmd).confirm(d.DeletePrompt()) {
				return nil
			}
			msg, err := d.Delete(cmd.Context(), entry)
			return report(cmd, msg, err)
		})
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore NAME",
	Short: "Restore an item from the trash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDashboard(cmd, func(a *app.App, d *drive.Dashboard) error {
			entry, err := lookup(d, args[0])
			if err != nil {
				return err
			}
			msg, err := d.Restore(cmd.Context(), entry)
			return report(cmd, msg, err)
		})
	},
}

var starCmd = &cobra.Command{
	Use:   "star NAME",
	Short: "Star or unstar an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDashboard(cmd, func(a *app.App, d *drive.Dashboard) error {
			entry, err := lookup(d, args[0])
			if err != nil {
				return err
			}
			msg, err := d.ToggleStar(cmd.Context(), entry)
			return report(cmd, msg, err)
		})
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename NAME NEW_NAME",
	Short: "Rename a file or folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDashboard(cmd, func(a *app.App, d *drive.Dashboard) error {
			entry, err := lookup(d, args[0])
			if err != nil {
				return err
			}
			msg, err := d.Rename(cmd.Context(), entry, args[1])
			return report(cmd, msg, err)
		})
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download NAME",
	Short: "Download a file, or a folder as a zip archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDashboard(cmd, func(a *app.App, d *drive.Dashboard) error {
			entry, err := lookup(d, args[0])
			if err != nil {
				return err
			}
			dir, _ := cmd.Flags().GetString("output")
			if dir == "" {
				dir = a.Config().Options.DownloadDir
			}
			if entry.IsFolder() {
				fmt.Fprintln(cmd.ErrOrStderr(), "Preparing ZIP file...")
			}
			path, err := d.Download(cmd.Context(), entry, dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), drive.DownloadMessage(entry, path))
			return nil
		})
	},
}

var viewCmd = &cobra.Command{
	Use:   "view NAME",
	Short: "Print a link that opens the file, and copy it to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDashboard(cmd, func(a *app.App, d *drive.Dashboard) error {
			entry, err := lookup(d, args[0])
			if err != nil {
				return err
			}
			url, err := d.ViewURL(cmd.Context(), entry)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			if err := copyToClipboard(url); err == nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Link copied to clipboard")
			}
			return nil
		})
	},
}

var emptyTrashCmd = &cobra.Command{
	Use:   "empty-trash",
	Short: "Permanently delete everything in the trash",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			if !a.Session.Authenticated() {
				return session.ErrNoSession
			}
			if yes, _ := cmd.Flags().GetBool("yes"); !yes && !newPrompter(cmd).confirm(drive.ConfirmEmptyTrash) {
				return nil
			}
			msg, err := a.Drive.EmptyTrash(cmd.Context())
			return report(cmd, msg, err)
		})
	},
}

// withDashboard runs fn with the dashboard opened at the --view and
// --folder flags.
func withDashboard(cmd *cobra.Command, fn func(a *app.App, d *drive.Dashboard) error) error {
	return withApp(cmd, func(a *app.App) error {
		if !a.Session.Authenticated() {
			return session.ErrNoSession
		}
		d := a.Drive
		viewFlag, _ := cmd.Flags().GetString("view")
		view, err := proto.ParseView(viewFlag)
		if err != nil {
			return err
		}
		if err := d.ChangeView(cmd.Context(), view); err != nil {
			return err
		}
		folder, _ := cmd.Flags().GetString("folder")
		if err := openPath(cmd.Context(), d, folder); err != nil {
			return err
		}
		return fn(a, d)
	})
}

// openPath walks a slash separated folder path from the current location.
// Segments match folder names or ids.
func openPath(ctx context.Context, d *drive.Dashboard, path string) error {
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		entry, ok := d.Lookup(seg)
		if !ok || !entry.IsFolder() {
			return fmt.Errorf("folder %q not found in %s", seg, location(d.Snapshot()))
		}
		if err := d.OpenFolder(ctx, entry.ID, entry.FileName); err != nil {
			return err
		}
	}
	return nil
}

func lookup(d *drive.Dashboard, ref string) (proto.FileEntry, error) {
	entry, ok := d.Lookup(ref)
	if !ok {
		return entry, fmt.Errorf("%q not found in %s", ref, location(d.Snapshot()))
	}
	return entry, nil
}

// location renders the breadcrumbs, e.g. "My Drive › docs › 2024".
func location(s drive.State) string {
	parts := []string{s.Title()}
	for _, seg := range s.Path {
		parts = append(parts, seg.Name)
	}
	return strings.Join(parts, " › ")
}

func report(cmd *cobra.Command, msg string, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}

func printListing(w io.Writer, s drive.State, files []proto.FileEntry) {
	fmt.Fprintf(w, "%s (%d)\n", location(s), len(files))
	if len(files) == 0 {
		fmt.Fprintln(w, emptyText(s))
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tSIZE\tUPLOADED\tID")
	for _, f := range files {
		name := f.FileName
		if f.IsStarred {
			name = "★ " + name
		}
		size := drive.FormatFileSize(f.FileSize)
		if f.IsFolder() {
			name += "/"
			size = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", name, f.Kind(), size, drive.FormatDate(f.UploadedAt), f.ID)
	}
	tw.Flush()
}

func emptyText(s drive.State) string {
	switch {
	case s.Search != "":
		return "No files match your search"
	case s.InTrash():
		return "Trash is empty"
	case len(s.Path) > 0:
		return "This folder is empty"
	default:
		return "No files yet. Upload some with `drive upload`."
	}
}

func printUploadProgress(w io.Writer, events <-chan pubsub.Event[drive.UploadProgress]) {
	for ev := range events {
		p := ev.Payload
		switch ev.Type {
		case drive.UploadStartedEvent:
			fmt.Fprintf(w, "[%d/%d] Uploading %s...\n", p.Index+1, p.Total, p.Name)
		case drive.UploadCompletedEvent, drive.UploadFailedEvent:
			fmt.Fprintf(w, "[%d/%d] %s\n", p.Index+1, p.Total, p.Message)
		}
	}
}
