package main

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/alphabot-ai/blogcli/internal/mockapi"
	"github.com/alphabot-ai/blogcli/internal/model"
)

const seedPassword = "password"

var seedUsers = []struct {
	email string
	role  model.Role
}{
	{"blogger@example.com", model.RoleBlogger},
	{"reader@example.com", model.RoleReader},
	{"ada@example.com", model.RoleBlogger},
	{"linus@example.com", model.RoleReader},
}

var seedPosts = []struct {
	header string
	body   string
}{
	{"Getting started with Go modules", "Modules replaced GOPATH a while ago, but plenty of tutorials still assume the old layout. Here is what a fresh project looks like today and why go.mod is the only file you need to start."},
	{"Notes from a week without a debugger", "I forced myself to debug with logs and tests only. It was slower on day one and faster by day five."},
	{"Why my blog has no comments section", "It does now. This post is here so the comments have something to argue with."},
	{"SQLite is enough", "Most side projects never outgrow a single file database. Start there and move when the numbers tell you to."},
	{"Reading code out loud", "Pair reviews where one person reads the diff aloud catch a surprising number of bugs."},
	{"The case for boring dependencies", "Every library you add is a library you maintain. Pick the ones that will still be around in five years."},
	{"Writing CLIs people enjoy", "Good defaults, clear errors, and output that pipes well. Everything else is decoration."},
	{"What I learned shipping a JWT login", "Tokens are easy to issue and hard to revoke. Keep them short lived and never trust the client's copy of the claims."},
	{"Terminal colors done right", "Respect NO_COLOR, detect a TTY, and never put meaning in color alone."},
	{"Pagination without surprises", "Offset pagination is fine until rows move under you. Know which one your users will notice."},
	{"A small ode to tablewriter", "Aligned columns make a terminal listing feel finished."},
	{"On deleting code", "The best pull request I reviewed this year removed two thousand lines and fixed three bugs."},
}

var seedComments = []string{
	"Great write-up, bookmarking this.",
	"I disagree with the conclusion, but the reasoning is solid.",
	"Has anyone measured this on a larger project?",
	"This matches my experience exactly.",
	"Could you share the config you used?",
	"Nice post. A follow-up on testing would be great.",
	"I tried this last week and it worked first time.",
	"Not sure this holds for teams bigger than five people.",
}

type seedSummary struct {
	Users    int
	Posts    int
	Comments int
	Replies  int
}

// seed fills api with sample users, posts, comments and replies. Every user
// signs in with seedPassword.
func seed(api *mockapi.Server, rng *rand.Rand) (seedSummary, error) {
	var summary seedSummary
	var bloggers, everyone []int64
	for _, u := range seedUsers {
		id, err := api.CreateUser(u.email, seedPassword, u.role)
		if err != nil {
			return summary, fmt.Errorf("create %s: %w", u.email, err)
		}
		everyone = append(everyone, id)
		if u.role == model.RoleBlogger {
			bloggers = append(bloggers, id)
		}
		summary.Users++
	}

	for _, p := range seedPosts {
		author := bloggers[rng.Intn(len(bloggers))]
		postID := api.SeedPost(author, p.header, p.body)
		summary.Posts++

		for i := rng.Intn(4); i > 0; i-- {
			commenter := everyone[rng.Intn(len(everyone))]
			commentID := api.SeedComment(commenter, postID, seedComments[rng.Intn(len(seedComments))])
			summary.Comments++

			if rng.Float32() < 0.4 {
				replier := everyone[rng.Intn(len(everyone))]
				api.SeedReply(replier, postID, commentID, seedComments[rng.Intn(len(seedComments))])
				summary.Replies++
			}
		}
	}
	return summary, nil
}

func printSummary(w io.Writer, s seedSummary) {
	fmt.Fprintln(w, "=== Seed Complete ===")
	fmt.Fprintf(w, "Users:    %d\n", s.Users)
	fmt.Fprintf(w, "Posts:    %d\n", s.Posts)
	fmt.Fprintf(w, "Comments: %d\n", s.Comments)
	fmt.Fprintf(w, "Replies:  %d\n", s.Replies)
	fmt.Fprintln(w, "\nSign in with any of:")
	for _, u := range seedUsers {
		fmt.Fprintf(w, "  %-22s %-8s password: %s\n", u.email, u.role, seedPassword)
	}
}
