package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alphabot-ai/blogcli/internal/model"
	"github.com/alphabot-ai/blogcli/internal/view"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var (
	titleColor  = color.New(color.FgHiWhite, color.Bold)
	authorColor = color.New(color.FgCyan)
	mutedColor  = color.New(color.FgHiBlack)
	okColor     = color.New(color.FgGreen)
	errColor    = color.New(color.FgRed, color.Bold)
)

func renderList(w io.Writer, page view.ListPage, command, empty string) {
	if len(page.Posts) == 0 {
		fmt.Fprintln(w, empty)
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Header", "Preview", "Author", "Posted"})
	table.SetColWidth(40)
	for _, p := range page.Posts {
		table.Append([]string{
			strconv.FormatInt(p.ID, 10),
			p.Header,
			p.Body,
			model.AuthorName(p.UserInfo),
			when(p.CreatedAt),
		})
	}
	table.Render()

	mutedColor.Fprintf(w, "Page %d of %d, %s posts\n", page.Page, page.TotalPages, humanize.Comma(page.Count))
	if page.HasPrev {
		mutedColor.Fprintf(w, "  previous: blogcli %s --page %d\n", command, page.Page-1)
	}
	if page.HasNext {
		mutedColor.Fprintf(w, "  next:     blogcli %s --page %d\n", command, page.Page+1)
	}
}

func renderPost(w io.Writer, v *view.PostView, post model.Post) {
	titleColor.Fprintln(w, post.Header)
	authorColor.Fprint(w, model.AuthorName(post.UserInfo))
	mutedColor.Fprintf(w, ", %s%s\n\n", when(post.CreatedAt), yours(v.CanManagePost()))
	fmt.Fprintln(w, post.Body)
	fmt.Fprintln(w)

	titleColor.Fprintf(w, "Comments (%d)\n", post.AllComments.Count)
	for _, c := range post.AllComments.Comments {
		mutedColor.Fprintf(w, "  #%d ", c.ID)
		authorColor.Fprint(w, model.AuthorName(c.UserInfo))
		mutedColor.Fprintf(w, ", %s%s\n", when(c.CreatedAt), yours(v.CanDeleteComment(c)))
		fmt.Fprintf(w, "    %s\n", indent(c.Content, "    "))

		for _, r := range c.AllReplies.Replies {
			mutedColor.Fprintf(w, "      ↳ #%d ", r.ID)
			authorColor.Fprint(w, model.AuthorName(r.UserInfo))
			mutedColor.Fprintf(w, ", %s%s\n", when(r.CreatedAt), yours(v.CanDeleteReply(r)))
			fmt.Fprintf(w, "        %s\n", indent(r.Content, "        "))
		}
	}
}

func renderHeader(w io.Writer, info view.HeaderInfo) {
	if info.SignedIn {
		fmt.Fprint(w, "Signed in as ")
		authorColor.Fprint(w, info.Name)
		mutedColor.Fprintf(w, " (%s)\n", info.Role)
	} else {
		fmt.Fprintln(w, "Not signed in")
	}
	for _, l := range info.Links {
		command := routeCommand(l.To)
		if l.Label == "Sign Out" {
			command = "blogcli signout"
		}
		mutedColor.Fprintf(w, "  %-9s %s\n", l.Label, command)
	}
}

func printRoute(w io.Writer, to view.Route) {
	mutedColor.Fprintf(w, "→ %s  (%s)\n", to, routeCommand(to))
}

// routeCommand names the command that shows route.
func routeCommand(to view.Route) string {
	s := string(to)
	if id, ok := strings.CutPrefix(s, "/blogs/"); ok {
		return "blogcli show " + id
	}
	if id, ok := strings.CutPrefix(s, "/update-blog/"); ok {
		return "blogcli edit " + id
	}
	switch to {
	case view.RouteSignIn:
		return "blogcli signin"
	case view.RouteSignUp:
		return "blogcli signup"
	case view.RouteMyBlogs:
		return "blogcli mine"
	case view.RouteAddBlog:
		return "blogcli new"
	}
	return "blogcli list"
}

func when(createdAt string) string {
	t, err := model.ParseTime(createdAt)
	if err != nil {
		return createdAt
	}
	return humanize.Time(t)
}

func yours(ok bool) string {
	if ok {
		return " [yours]"
	}
	return ""
}

func indent(s, prefix string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", "\n"+prefix)
}
