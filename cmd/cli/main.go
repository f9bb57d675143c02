package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lazymystic/instafake-go/cmd/app"
	"github.com/lazymystic/instafake-go/internal/api"
	"github.com/lazymystic/instafake-go/internal/config"
	"github.com/lazymystic/instafake-go/internal/controller"
	"github.com/lazymystic/instafake-go/internal/models"
)

func main() {
	cfg := config.LoadConfig()

	ctrl, _, err := app.App(cfg)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}

	ctx := context.Background()

	fmt.Printf("Instafake terminal client (%s)\n", cfg.BaseAPIURL)
	fmt.Println(`Type "help" for commands.`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		command, args := fields[0], fields[1:]

		switch command {
		case "help":
			printHelp()
		case "quit", "exit":
			return

		case "signup":
			runSignup(ctx, ctrl, scanner)
		case "login":
			runLogin(ctx, ctrl, scanner)
		case "logout":
			ctrl.Logout(ctx)
		case "me":
			runMe(ctx, ctrl)
		case "verify":
			runVerify(ctx, ctrl, scanner)
		case "forget-password":
			if len(args) < 1 {
				fmt.Println("usage: forget-password <email>")
				continue
			}
			ctrl.ForgetPassword(ctx, args[0])
		case "reset-password":
			runResetPassword(ctx, ctrl, scanner)
		case "change-password":
			runChangePassword(ctx, ctrl, scanner)

		case "feed":
			if ctrl.LoadFeed(ctx) {
				renderFeed(ctrl)
			}
		case "like":
			if len(args) < 1 {
				fmt.Println("usage: like <postID>")
				continue
			}
			ctrl.ToggleLike(ctx, args[0])
		case "save":
			if len(args) < 1 {
				fmt.Println("usage: save <postID>")
				continue
			}
			ctrl.ToggleSave(ctx, args[0])
		case "comment":
			if len(args) < 2 {
				fmt.Println("usage: comment <postID> <text>")
				continue
			}
			ctrl.AddComment(ctx, args[0], strings.Join(args[1:], " "))
		case "post":
			if len(args) < 1 {
				fmt.Println("usage: post <imagePath> [caption]")
				continue
			}
			runCreatePost(ctx, ctrl, args[0], strings.Join(args[1:], " "))
		case "delete":
			if len(args) < 1 {
				fmt.Println("usage: delete <postID>")
				continue
			}
			ctrl.DeletePost(ctx, args[0])

		case "profile":
			if len(args) < 1 {
				fmt.Println("usage: profile <userID>")
				continue
			}
			runProfile(ctx, ctrl, args[0])
		case "follow":
			if len(args) < 1 {
				fmt.Println("usage: follow <userID>")
				continue
			}
			ctrl.FollowUnfollow(ctx, args[0])
		case "suggested":
			for _, user := range ctrl.SuggestedUsers(ctx) {
				fmt.Printf("  %s  %s\n", user.ID, user.UserName)
			}
		case "edit-bio":
			ctrl.EditProfile(ctx, strings.Join(args, " "), nil)
		case "edit-picture":
			if len(args) < 1 {
				fmt.Println("usage: edit-picture <imagePath>")
				continue
			}
			runEditPicture(ctx, ctrl, args[0])

		default:
			fmt.Printf("unknown command %q, try \"help\"\n", command)
		}
	}
}

func printHelp() {
	fmt.Println(`auth:
  signup | login | logout | me | verify
  forget-password <email> | reset-password | change-password
feed:
  feed | like <postID> | save <postID> | comment <postID> <text>
  post <imagePath> [caption] | delete <postID>
people:
  profile <userID> | follow <userID> | suggested
  edit-bio [text] | edit-picture <imagePath>
other:
  help | quit`)
}

func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Printf("%s: ", label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

func runSignup(ctx context.Context, ctrl *controller.Controller, scanner *bufio.Scanner) {
	req := api.SignupRequest{
		UserName:        prompt(scanner, "username"),
		Email:           prompt(scanner, "email"),
		Password:        prompt(scanner, "password"),
		PasswordConfirm: prompt(scanner, "confirm password"),
	}
	if ctrl.Signup(ctx, req) == controller.RouteVerify {
		// the signup response set the session cookie; pull the
		// unverified user so the verify guard passes
		ctrl.RestoreSession(ctx)
		runVerify(ctx, ctrl, scanner)
	}
}

func runLogin(ctx context.Context, ctrl *controller.Controller, scanner *bufio.Scanner) {
	req := api.LoginRequest{
		Email:    prompt(scanner, "email"),
		Password: prompt(scanner, "password"),
	}
	ctrl.Login(ctx, req)
}

func runMe(ctx context.Context, ctrl *controller.Controller) {
	if ctrl.Session.User() == nil && !ctrl.RestoreSession(ctx) {
		return
	}
	user := ctrl.Session.User()
	verified := "unverified"
	if user.IsVerified {
		verified = "verified"
	}
	fmt.Printf("%s (%s, %s)\n", user.UserName, user.Email, verified)
	fmt.Printf("  bio: %s\n", user.Bio)
	fmt.Printf("  followers %d, following %d, saved posts %d\n",
		len(user.Followers), len(user.Following), len(user.SavedPosts))
}

func runVerify(ctx context.Context, ctrl *controller.Controller, scanner *bufio.Scanner) {
	flow := ctrl.NewVerifyFlow()
	switch flow.Guard() {
	case controller.RouteLogin:
		fmt.Println("please login first")
		return
	case controller.RouteHome:
		fmt.Println("account is already verified")
		return
	}

	tickCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	flow.Start(tickCtx)
	defer flow.Stop()

	fmt.Println("enter the 6-digit code from your email")
	fmt.Println(`commands: <digits> | resend | time | back`)
	for {
		fmt.Printf("verify (%s left)> ", flow.FormatTimeLeft())
		if !scanner.Scan() {
			return
		}
		input := strings.TrimSpace(scanner.Text())
		switch input {
		case "":
			continue
		case "back":
			return
		case "time":
			fmt.Printf("code expires in %s\n", flow.FormatTimeLeft())
		case "resend":
			if !flow.CanResend() {
				fmt.Println("resend is locked for the first minute")
				continue
			}
			flow.Resend(ctx)
		default:
			flow.Paste(input)
			if flow.Submit(ctx) == controller.RouteHome {
				return
			}
		}
	}
}

func runResetPassword(ctx context.Context, ctrl *controller.Controller, scanner *bufio.Scanner) {
	req := api.ResetPasswordRequest{
		Email:           prompt(scanner, "email"),
		OTP:             prompt(scanner, "otp"),
		Password:        prompt(scanner, "new password"),
		PasswordConfirm: prompt(scanner, "confirm password"),
	}
	ctrl.ResetPassword(ctx, req)
}

func runChangePassword(ctx context.Context, ctrl *controller.Controller, scanner *bufio.Scanner) {
	req := api.ChangePasswordRequest{
		CurrentPassword:    prompt(scanner, "current password"),
		NewPassword:        prompt(scanner, "new password"),
		NewPasswordConfirm: prompt(scanner, "confirm new password"),
	}
	ctrl.ChangePassword(ctx, req)
}

func runCreatePost(ctx context.Context, ctrl *controller.Controller, path, caption string) {
	upload, file, err := openUpload(path, "image")
	if err != nil {
		fmt.Printf("cannot read image: %v\n", err)
		return
	}
	defer file.Close()
	ctrl.CreatePost(ctx, caption, upload)
}

func runEditPicture(ctx context.Context, ctrl *controller.Controller, path string) {
	upload, file, err := openUpload(path, "profilePicture")
	if err != nil {
		fmt.Printf("cannot read image: %v\n", err)
		return
	}
	defer file.Close()
	user := ctrl.Session.User()
	bio := ""
	if user != nil {
		bio = user.Bio
	}
	ctrl.EditProfile(ctx, bio, upload)
}

func openUpload(path, field string) (*api.Upload, *os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, err
	}
	return &api.Upload{
		Field:       field,
		FileName:    filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Size:        info.Size(),
		Content:     file,
	}, file, nil
}

func runProfile(ctx context.Context, ctrl *controller.Controller, userID string) {
	view, route := ctrl.LoadProfile(ctx, userID)
	if route == controller.RouteLogin {
		fmt.Println("please login first")
		return
	}
	if view == nil {
		return
	}

	fmt.Printf("%s\n", view.User.UserName)
	if view.User.Bio != "" {
		fmt.Printf("  %s\n", view.User.Bio)
	}
	fmt.Printf("  posts %d, followers %d, following %d\n",
		len(view.User.Posts), len(view.User.Followers), len(view.User.Following))
	switch {
	case view.IsOwnProfile:
		fmt.Println("  (this is you)")
	case view.IsFollowing:
		fmt.Println("  following")
	default:
		fmt.Println("  not following")
	}
}

func renderFeed(ctrl *controller.Controller) {
	posts := ctrl.Feed.Posts()
	if len(posts) == 0 {
		fmt.Println("No posts available. Start following people to see their posts!")
		return
	}
	user := ctrl.Session.User()
	for _, post := range posts {
		renderPost(post, user)
	}
}

func renderPost(post models.Post, user *models.User) {
	liked := " "
	if user != nil && contains(post.Likes, user.ID) {
		liked = "*"
	}
	fmt.Printf("[%s] %s  %s\n", post.ID, post.User.UserName, formatTimeAgo(post.CreatedAt))
	if post.Caption != "" {
		fmt.Printf("  %s\n", post.Caption)
	}
	fmt.Printf("  %s%d likes, %d comments  %s\n", liked, len(post.Likes), len(post.Comments), post.Image.URL)
	for _, comment := range post.Comments {
		fmt.Printf("    %s: %s\n", comment.User.UserName, comment.Text)
	}
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func formatTimeAgo(t time.Time) string {
	diff := time.Since(t)
	days := int(diff.Hours()) / 24
	hours := int(diff.Hours())
	switch {
	case days > 1:
		return fmt.Sprintf("%d days ago", days)
	case days == 1:
		return "1 day ago"
	case hours > 1:
		return fmt.Sprintf("%d hours ago", hours)
	case hours == 1:
		return "1 hour ago"
	default:
		return "Just now"
	}
}
