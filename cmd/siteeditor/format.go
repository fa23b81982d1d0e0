package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/milk9111/siteeditor/editor"
	"github.com/milk9111/siteeditor/site"
	"gopkg.in/yaml.v3"
)

func printSummary(w io.Writer, summary editor.Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(summary); err != nil {
		return err
	}
	return enc.Close()
}

func printIssues(w io.Writer, s *editor.Session, issues []site.Issue) {
	if len(issues) == 0 {
		fmt.Fprintln(w, "no issues")
		return
	}
	fmt.Fprintf(w, "ISSUES (%d):\n", len(issues))
	for _, issue := range issues {
		names := make([]string, 0, len(issue.Key.Entities))
		for _, e := range issue.Key.Entities {
			names = append(names, s.Name(e))
		}
		fmt.Fprintf(w, "  [%s] %s\n", issue.Key.Kind, issue.Brief)
		fmt.Fprintf(w, "    lifts: %s\n", strings.Join(names, ", "))
		fmt.Fprintf(w, "    * %s\n", issue.Hint)
	}
}
