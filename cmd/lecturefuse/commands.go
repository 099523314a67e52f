package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/lecture-fuse/internal/export"
	"github.com/nguyentantai21042004/lecture-fuse/internal/fuser"
	"github.com/nguyentantai21042004/lecture-fuse/internal/summarizer"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Import metadata and transcripts into the database",
		Long: `Imports every *.json file of paths.meta as a lecture, together with the
transcript in paths.timestamped whose file name matches it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := a.importer.ImportDir(cmd.Context(), a.cfg.Paths.Meta, a.cfg.Paths.Timestamped)
			if err != nil {
				return err
			}
			cmd.Printf("Imported %d lectures.\n", len(ids))
			return nil
		},
	}
}

func newFuseCmd(a *app) *cobra.Command {
	var (
		lectures []int64
		policy   string
	)

	cmd := &cobra.Command{
		Use:   "fuse",
		Short: "Fuse transcript excerpts into sentences",
		Long: `Fuses all stored excerpts in one pass and replaces the fused sentence table.
With --lecture, each given lecture is fused independently.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if policy != "" {
				if _, ok := fuser.ParsePolicy(policy); !ok {
					return fmt.Errorf("unknown policy %q", policy)
				}
				a.cfg.Fusion.Policy = policy
			}

			var (
				n   int
				err error
			)
			if len(lectures) > 0 {
				n, err = a.proc.FuseLectures(cmd.Context(), lectures)
			} else {
				n, err = a.proc.FuseAll(cmd.Context())
			}
			if err != nil {
				return err
			}
			cmd.Printf("Stored %d fused sentences.\n", n)
			return nil
		},
	}
	cmd.Flags().Int64SliceVarP(&lectures, "lecture", "l", nil, "lecture ids to fuse (default all)")
	cmd.Flags().StringVar(&policy, "policy", "", "override fusion.policy (corrected|source)")
	return cmd
}

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Import, then fuse everything",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.proc.Run(cmd.Context())
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var lectureID int64

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write fused transcripts as docx files",
		RunE: func(cmd *cobra.Command, args []string) error {
			exp := export.New(a.store, a.log)
			if lectureID > 0 {
				path, err := exp.ExportLecture(cmd.Context(), lectureID, a.cfg.Paths.Export)
				if err != nil {
					return err
				}
				if path == "" {
					cmd.Printf("Lecture %d has no fused sentences.\n", lectureID)
					return nil
				}
				cmd.Printf("Wrote %s\n", path)
				return nil
			}

			n, err := exp.ExportAll(cmd.Context(), a.cfg.Paths.Export)
			if err != nil {
				return err
			}
			cmd.Printf("Exported %d transcripts to %s\n", n, a.cfg.Paths.Export)
			return nil
		},
	}
	cmd.Flags().Int64VarP(&lectureID, "lecture", "l", 0, "export a single lecture")
	return cmd
}

func newSummarizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize",
		Short: "Summarise fused lectures with Gemini",
		Long: `Sends each fused lecture transcript to Gemini and writes markdown and docx
summaries into paths.summaries. Keys come from gemini.api_keys or GEMINI_API_KEYS.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := summarizer.New(a.store, a.cfg.Gemini.APIKeys, a.cfg.Gemini.Model, a.log)
			return s.SummarizeAll(cmd.Context(), a.cfg.Paths.Summaries)
		},
	}
}
