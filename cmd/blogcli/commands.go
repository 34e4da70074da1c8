package main

import (
	"fmt"
	"strconv"

	"github.com/alphabot-ai/blogcli/internal/model"
	"github.com/alphabot-ai/blogcli/internal/view"

	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "blogcli",
		Short:         "Read and write blog posts from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
	}
	root.AddCommand(
		listCmd(a),
		mineCmd(a),
		showCmd(a),
		commentCmd(a),
		replyCmd(a),
		rmCommentCmd(a),
		rmReplyCmd(a),
		rmPostCmd(a),
		newPostCmd(a),
		editCmd(a),
		signInCmd(a),
		signUpCmd(a),
		verifyCmd(a),
		signOutCmd(a),
		whoamiCmd(a),
	)
	return root
}

func listCmd(a *app) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the newest posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := view.NewFeed(a.api, a.gate, a.cfg.PageSize).List(cmd.Context(), page)
			if err != nil {
				return err
			}
			renderList(cmd.OutOrStdout(), res, "list", "No posts yet.")
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

func mineCmd(a *app) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "mine",
		Short: "List your own posts (bloggers only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := view.NewMyBlogs(a.api, a.gate, a.cfg.PageSize).List(cmd.Context(), page)
			if err != nil {
				return err
			}
			renderList(cmd.OutOrStdout(), res, "mine", "You have not written anything yet. Start with: blogcli new")
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <post-id>",
		Short: "Show a post with its comments and replies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			postID, err := parseID(args[0])
			if err != nil {
				return err
			}
			v := view.NewPostView(a.api, a.gate)
			defer v.Close()
			post, err := v.Open(cmd.Context(), postID)
			if err != nil {
				return err
			}
			renderPost(cmd.OutOrStdout(), v, post)
			return nil
		},
	}
}

// openPost parses the post id argument and opens the post view on it.
func openPost(cmd *cobra.Command, a *app, arg string) (*view.PostView, error) {
	postID, err := parseID(arg)
	if err != nil {
		return nil, err
	}
	v := view.NewPostView(a.api, a.gate)
	if _, err := v.Open(cmd.Context(), postID); err != nil {
		return nil, err
	}
	return v, nil
}

func commentCmd(a *app) *cobra.Command {
	var text string
	cmd := &cobra.Command{
		Use:   "comment <post-id>",
		Short: "Comment on a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openPost(cmd, a, args[0])
			if err != nil {
				return err
			}
			defer v.Close()
			post, err := v.AddComment(cmd.Context(), text)
			if err != nil {
				return err
			}
			renderPost(cmd.OutOrStdout(), v, post)
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "comment text")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func replyCmd(a *app) *cobra.Command {
	var text string
	cmd := &cobra.Command{
		Use:   "reply <post-id> <comment-id>",
		Short: "Reply to a comment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			commentID, err := parseID(args[1])
			if err != nil {
				return err
			}
			v, err := openPost(cmd, a, args[0])
			if err != nil {
				return err
			}
			defer v.Close()
			post, err := v.Reply(cmd.Context(), commentID, text)
			if err != nil {
				return err
			}
			renderPost(cmd.OutOrStdout(), v, post)
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "reply text")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func rmCommentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm-comment <post-id> <comment-id>",
		Short: "Delete one of your comments",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			commentID, err := parseID(args[1])
			if err != nil {
				return err
			}
			v, err := openPost(cmd, a, args[0])
			if err != nil {
				return err
			}
			defer v.Close()
			post, err := v.DeleteComment(cmd.Context(), commentID)
			if err != nil {
				return err
			}
			renderPost(cmd.OutOrStdout(), v, post)
			return nil
		},
	}
}

func rmReplyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm-reply <post-id> <reply-id>",
		Short: "Delete one of your replies",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			replyID, err := parseID(args[1])
			if err != nil {
				return err
			}
			v, err := openPost(cmd, a, args[0])
			if err != nil {
				return err
			}
			defer v.Close()
			post, err := v.DeleteReply(cmd.Context(), replyID)
			if err != nil {
				return err
			}
			renderPost(cmd.OutOrStdout(), v, post)
			return nil
		},
	}
}

func rmPostCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm-post <post-id>",
		Short: "Delete one of your posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openPost(cmd, a, args[0])
			if err != nil {
				return err
			}
			defer v.Close()
			to, err := v.DeletePost(cmd.Context())
			if err != nil {
				return err
			}
			okColor.Fprintf(cmd.OutOrStdout(), "✓ Deleted post %s\n", args[0])
			printRoute(cmd.OutOrStdout(), to)
			return nil
		},
	}
}

func newPostCmd(a *app) *cobra.Command {
	var header, body string
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Publish a new post (bloggers only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := view.NewComposer(a.api, a.gate).Submit(cmd.Context(), header, body)
			if err != nil {
				return err
			}
			okColor.Fprintf(cmd.OutOrStdout(), "✓ Published %q\n", header)
			printRoute(cmd.OutOrStdout(), to)
			return nil
		},
	}
	cmd.Flags().StringVar(&header, "header", "", "post header")
	cmd.Flags().StringVar(&body, "body", "", "post body")
	_ = cmd.MarkFlagRequired("header")
	_ = cmd.MarkFlagRequired("body")
	return cmd
}

func editCmd(a *app) *cobra.Command {
	var header, body string
	cmd := &cobra.Command{
		Use:   "edit <post-id>",
		Short: "Edit one of your posts; omitted fields stay as they are",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			postID, err := parseID(args[0])
			if err != nil {
				return err
			}
			ed := view.NewEditor(a.api, a.gate)
			if _, err := ed.Open(cmd.Context(), postID); err != nil {
				return err
			}
			to, err := ed.Submit(cmd.Context(), header, body)
			if err != nil {
				return err
			}
			okColor.Fprintf(cmd.OutOrStdout(), "✓ Updated post %d\n", postID)
			printRoute(cmd.OutOrStdout(), to)
			return nil
		},
	}
	cmd.Flags().StringVar(&header, "header", "", "new header")
	cmd.Flags().StringVar(&body, "body", "", "new body")
	return cmd
}

func signInCmd(a *app) *cobra.Command {
	var email, password string
	var remember bool
	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := view.NewSignIn(a.api, a.tokens)
			if err := in.Open(cmd.Context()); err != nil {
				return err
			}
			to, err := in.Submit(cmd.Context(), email, password, remember)
			if err != nil {
				return err
			}
			okColor.Fprintln(cmd.OutOrStdout(), "✓ Signed in")
			printRoute(cmd.OutOrStdout(), to)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().BoolVar(&remember, "remember", false, "stay signed in after this login session ends")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func signUpCmd(a *app) *cobra.Command {
	var email, password, role string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account; a verification code is emailed to you",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			up := view.NewSignUp(a.api, a.tokens)
			if err := up.Open(cmd.Context()); err != nil {
				return err
			}
			if err := up.Register(cmd.Context(), email, password, model.Role(role)); err != nil {
				return err
			}
			okColor.Fprintf(cmd.OutOrStdout(), "✓ Check %s for a verification code\n", email)
			fmt.Fprintf(cmd.OutOrStdout(), "  Then run: blogcli verify --email %s --code <code>\n", email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&role, "role", string(model.RoleReader), "blogger or reader")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func verifyCmd(a *app) *cobra.Command {
	var email, code string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Confirm your email with the code you received",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := view.NewSignUp(a.api, a.tokens).Verify(cmd.Context(), email, code)
			if err != nil {
				return err
			}
			okColor.Fprintln(cmd.OutOrStdout(), "✓ Verified and signed in")
			printRoute(cmd.OutOrStdout(), to)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&code, "code", "", "verification code")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}

func signOutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := view.NewHeaderView(a.gate).SignOut(cmd.Context())
			if err != nil {
				return err
			}
			okColor.Fprintln(cmd.OutOrStdout(), "✓ Signed out")
			printRoute(cmd.OutOrStdout(), to)
			return nil
		},
	}
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show who is signed in and what you can do",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderHeader(cmd.OutOrStdout(), view.NewHeaderView(a.gate).Header(cmd.Context()))
			return nil
		},
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
