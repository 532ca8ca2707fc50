/*
Package treedbg implements helpers to debug a tracking tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>


*/
package treedbg

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"text/template"
	"unicode/utf8"

	"github.com/npillmayer/contentmodel/tree"
	"github.com/xlab/treeprint"
)

// Labeler returns a display label for the payload of a node. isText marks
// payloads which should be drawn as text rather than as elements.
type Labeler[T any] func(payload T) (label string, isText bool)

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname string
	NodeTmpl *template.Template
	EdgeTmpl *template.Template
}

// ToGraphViz outputs a diagram for the subtree below root. The diagram is
// in GraphViz (DOT) format. Only registered children are reachable, so
// nodes which have not finished evaluation are missing from the diagram.
func ToGraphViz[T any](t *tree.Tree[T], root tree.NodeID, label Labeler[T], w io.Writer) error {
	tmpl, err := template.New("tree").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("treenode").Funcs(
		template.FuncMap{
			"shortstring": shortText,
		}).Parse(treeNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("treeedge").Parse(treeEdgeTmpl))
	if err = tmpl.Execute(w, gparams); err != nil {
		return err
	}
	err = t.TopDown(root, func(n, parent tree.NodeID, position int) error {
		lbl, isText := label(t.Payload(n))
		gn := node{
			Name:   nodeName(n),
			Label:  lbl,
			Text:   isText,
			Marker: t.Node(n).Rank.String(),
		}
		if err := gparams.NodeTmpl.Execute(w, gn); err != nil {
			return err
		}
		if parent == tree.None || n == root {
			return nil
		}
		return gparams.EdgeTmpl.Execute(w, edge{nodeName(parent), gn.Name, position})
	})
	if err != nil {
		return err
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

// Dotty is a helper for testing. Given a tree and a testing.T, it will
// create a GraphViz image of the subtree below root and write it to a
// file in the current folder, choosing a unique file name.
// The image is in SVG format.
//
// If an error occurs, t.Error(…) will be set, causing the test to fail.
func Dotty[T any](tr *tree.Tree[T], root tree.NodeID, label Labeler[T], t *testing.T) {
	tmpfile, err := os.CreateTemp(".", "tree.*.dot")
	if err != nil {
		t.Error(err)
		return
	}
	defer func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name()) // clean up
	}()
	t.Logf("writing tree digraph to %s\n", tmpfile.Name())
	if err = ToGraphViz(tr, root, label, tmpfile); err != nil {
		t.Error(err)
		return
	}
	outOption := fmt.Sprintf("-o%s.svg", tmpfile.Name())
	cmd := exec.Command("dot", "-Tsvg", outOption, tmpfile.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	t.Logf("writing tree image to %s.svg\n", tmpfile.Name())
	if err := cmd.Run(); err != nil {
		t.Error(err.Error())
	}
}

// Print renders the subtree below root as an indented text tree, e.g.
//
//	html @/
//	├── head @0.0.1.0
//	│   └── title @0.0.1.0.0.1.0
//	└── body @0.0.1.1
func Print[T any](t *tree.Tree[T], root tree.NodeID, label Labeler[T]) string {
	if t.Node(root) == nil {
		return ""
	}
	lbl, _ := label(t.Payload(root))
	top := treeprint.NewWithRoot(fmt.Sprintf("%s @%s", lbl, t.Node(root).Rank))
	printChildren(t, root, label, top)
	return strings.TrimRight(top.String(), "\n")
}

func printChildren[T any](t *tree.Tree[T], id tree.NodeID, label Labeler[T], branch treeprint.Tree) {
	for _, ch := range t.Children(id) {
		lbl, isText := label(t.Payload(ch))
		if isText {
			lbl = shortQuoted(lbl)
		}
		text := fmt.Sprintf("%s @%s", lbl, t.Node(ch).Rank)
		if t.ChildCount(ch) == 0 {
			branch.AddNode(text)
			continue
		}
		printChildren(t, ch, label, branch.AddBranch(text))
	}
}

type node struct {
	Name   string
	Label  string
	Text   bool
	Marker string
}

type edge struct {
	From, To string
	Position int
}

func nodeName(id tree.NodeID) string {
	return fmt.Sprintf("node%05d", id)
}

// shorten cuts s after n runes.
func shorten(s string, n int) (string, bool) {
	if utf8.RuneCountInString(s) <= n {
		return s, false
	}
	return string([]rune(s)[:n]), true
}

func shortQuoted(s string) string {
	if short, cut := shorten(s, 10); cut {
		s = short + "..."
	}
	return fmt.Sprintf("%q", s)
}

func shortText(s string) string {
	q := "\"\\\""
	if short, cut := shorten(s, 10); cut {
		q += short + "...\\\"\""
	} else {
		q += s + "\\\"\""
	}
	q = strings.Replace(q, "\n", `\\n`, -1)
	q = strings.Replace(q, "\t", `\\t`, -1)
	q = strings.Replace(q, " ", "\u2423", -1)
	return q
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [{{ .Fontname }} = "helvetica" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const treeNodeTmpl = `{{ if .Text }}
{{ .Name }}	[ label={{ shortstring .Label }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ else }}
{{ .Name }}	[ label={{ printf "%s @%s" .Label .Marker | printf "%q" }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
{{ end }}
`

const treeEdgeTmpl = `{{ .From }} -> {{ .To }} [weight=1 label="{{ .Position }}"] ;
`
