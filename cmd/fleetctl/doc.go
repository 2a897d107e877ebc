package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"fleet-backend/internal/docview"

	"github.com/spf13/cobra"
)

type storedDocument struct {
	Type        string `json:"type"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	UploadDate  string `json:"uploadDate"`
}

func documentPath(owner, key string, rest ...string) string {
	p := "/api/" + url.PathEscape(owner) + "/" + url.PathEscape(key) + "/documents"
	for _, r := range rest {
		p += "/" + url.PathEscape(r)
	}
	return p
}

func newDocCmd(a *app) *cobra.Command {
	doc := &cobra.Command{
		Use:   "doc",
		Short: "Work with stored documents",
	}

	doc.AddCommand(&cobra.Command{
		Use:   "list <owner> <key>",
		Short: "List the documents of a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var docs []storedDocument
			if err := a.api.Get(cmd.Context(), documentPath(args[0], args[1]), &docs); err != nil {
				return err
			}
			t := table{header: []string{"type", "file", "content_type", "size", "uploaded"}}
			for _, d := range docs {
				t.rows = append(t.rows, []string{d.Type, d.FileName, d.ContentType, fmt.Sprint(d.Size), d.UploadDate})
			}
			return writeTable(a.out, t)
		},
	})

	doc.AddCommand(&cobra.Command{
		Use:   "upload <owner> <key> <type> <file>",
		Short: "Upload or replace a document",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[3])
			if err != nil {
				return err
			}
			var out struct {
				Message string `json:"message"`
			}
			path := documentPath(args[0], args[1], args[2], "upload")
			if err := a.api.Upload(cmd.Context(), path, filepath.Base(args[3]), data, &out); err != nil {
				return err
			}
			fmt.Fprintln(a.out, out.Message)
			return nil
		},
	})

	doc.AddCommand(&cobra.Command{
		Use:   "view <owner> <key> <type>",
		Short: "Open a document; + and - zoom, q closes",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, contentType, err := a.api.Download(cmd.Context(), documentPath(args[0], args[1], args[2]))
			if err != nil {
				return err
			}

			store, err := docview.NewTempStore()
			if err != nil {
				return err
			}
			defer store.Cleanup()

			viewer := docview.NewViewer(store)
			defer viewer.Close()

			u, err := viewer.Open(docview.Document{Name: args[2], ContentType: contentType, Data: data})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s at %s (zoom %d%%)\n", viewer.Name(), u, viewer.Zoom())
			return a.viewLoop(viewer)
		},
	})
	return doc
}

func (a *app) viewLoop(v *docview.Viewer) error {
	for {
		line, err := a.in.ReadString('\n')
		switch strings.TrimSpace(line) {
		case "+":
			fmt.Fprintf(a.out, "zoom %d%%\n", v.ZoomIn())
		case "-":
			fmt.Fprintf(a.out, "zoom %d%%\n", v.ZoomOut())
		case "q":
			return v.Close()
		}
		if err != nil {
			return v.Close()
		}
	}
}
