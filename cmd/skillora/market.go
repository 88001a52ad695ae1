package main

import (
	"fmt"
	"strings"

	"skillora/internal/assist"
	"skillora/internal/model"

	"github.com/spf13/cobra"
)

// session commands
var loginCmd = &cobra.Command{
	Use:   "login ROLE NAME",
	Short: "Log in as a freelancer or client",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "Login")
		if err != nil {
			return err
		}
		defer a.Close()

		user, err := a.Service().Login(cmd.Context(), model.Role(args[0]), args[1])
		if err != nil {
			return a.Fail(err)
		}
		fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "Logout")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().Logout(cmd.Context()); err != nil {
			return a.Fail(err)
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "CurrentUser")
		if err != nil {
			return err
		}
		defer a.Close()

		user, err := a.Service().CurrentUser(cmd.Context())
		if err != nil {
			return a.Fail(err)
		}
		if user == nil {
			fmt.Println("Not logged in.")
			return nil
		}
		fmt.Printf("%s <%s>\n", user.Name, user.Email)
		fmt.Printf("Role:     %s\n", user.Role)
		fmt.Printf("Headline: %s\n", user.Headline)
		fmt.Printf("Location: %s\n", user.Location)
		if user.HourlyRate != "" {
			fmt.Printf("Rate:     %s\n", user.HourlyRate)
		}
		if len(user.Skills) > 0 {
			fmt.Printf("Skills:   %s\n", strings.Join(user.Skills, ", "))
		}
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update the logged-in user's profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "UpdateUser")
		if err != nil {
			return err
		}
		defer a.Close()

		sess, err := a.Session(cmd.Context())
		if err != nil {
			return a.Fail(err)
		}
		if sess == nil {
			return a.Fail(fmt.Errorf("not logged in"))
		}

		var update model.ProfileUpdate
		flags := cmd.Flags()
		for name, field := range map[string]**string{
			"name":     &update.Name,
			"email":    &update.Email,
			"avatar":   &update.Avatar,
			"headline": &update.Headline,
			"bio":      &update.Bio,
			"location": &update.Location,
			"rate":     &update.HourlyRate,
		} {
			if flags.Changed(name) {
				v, _ := flags.GetString(name)
				*field = &v
			}
		}
		if flags.Changed("skills") {
			skills, _ := flags.GetStringSlice("skills")
			update.Skills = &skills
		}
		if suggest, _ := flags.GetBool("suggest-headline"); suggest {
			h := a.Assistant().Headline(string(sess.User().Role))
			update.Headline = &h
		}
		if flags.Changed("polish") {
			tone := assist.Tone(mustString(cmd, "polish"))
			if !tone.Valid() {
				return a.Fail(fmt.Errorf("unknown tone %q", tone))
			}
			bio := sess.User().Bio
			if update.Bio != nil {
				bio = *update.Bio
			}
			polished := a.Assistant().Polish(bio, tone)
			update.Bio = &polished
		}

		user, err := a.Service().UpdateUser(cmd.Context(), sess, update)
		if err != nil {
			return a.Fail(err)
		}
		if user == nil {
			return a.Fail(fmt.Errorf("session changed; log in again"))
		}
		fmt.Printf("Profile updated for %s.\n", user.Name)
		return nil
	},
}

// jobs commands
var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Browse and post jobs",
}

var jobsListCmd = &cobra.Command{
	Use:   "list [QUERY]",
	Short: "List jobs, optionally filtered by a search query",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "GetJobs")
		if err != nil {
			return err
		}
		defer a.Close()

		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		jobs, err := a.Service().GetJobs(cmd.Context(), query)
		if err != nil {
			return a.Fail(err)
		}
		printJobs(jobs)
		return nil
	},
}

var jobsShowCmd = &cobra.Command{
	Use:   "show JOB_ID",
	Short: "Show a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "GetJobByID")
		if err != nil {
			return err
		}
		defer a.Close()

		job, err := a.Service().GetJobByID(cmd.Context(), args[0])
		if err != nil {
			return a.Fail(err)
		}
		if job == nil {
			return a.Fail(fmt.Errorf("job %s not found", args[0]))
		}

		fmt.Printf("%s  [%s]\n", job.Title, job.ID)
		fmt.Printf("%s · %s · %s · posted %s\n", job.Budget, job.Type, job.Level, job.PostedTime)
		fmt.Printf("Tags: %s\n", strings.Join(job.Tags, ", "))
		fmt.Printf("Client rating %.1f (%d reviews), %d proposals\n", job.ClientRating, job.ReviewCount, job.ProposalsCount)
		if job.Status != "" {
			fmt.Printf("Status: %s\n", job.Status)
		}
		fmt.Printf("\n%s\n", job.Description)
		return nil
	},
}

var jobsPostCmd = &cobra.Command{
	Use:   "post TITLE",
	Short: "Post a new job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "PostJob")
		if err != nil {
			return err
		}
		defer a.Close()

		sess, err := a.Session(cmd.Context())
		if err != nil {
			return a.Fail(err)
		}

		draft := model.JobDraft{Title: args[0], Description: mustString(cmd, "description")}
		if draft.Description == "" {
			draft.Description = a.Assistant().JobDescription(draft.Title)
		}
		job, err := a.Service().PostJob(cmd.Context(), sess, draft)
		if err != nil {
			return a.Fail(err)
		}
		fmt.Printf("Posted %s (%s, budget %s)\n", job.ID, job.Title, job.Budget)
		return nil
	},
}

var jobsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List the logged-in client's jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "GetMyJobs")
		if err != nil {
			return err
		}
		defer a.Close()

		sess, err := a.Session(cmd.Context())
		if err != nil {
			return a.Fail(err)
		}
		jobs, err := a.Service().GetMyJobs(cmd.Context(), sess)
		if err != nil {
			return a.Fail(err)
		}
		printJobs(jobs)
		return nil
	},
}

func printJobs(jobs []model.Job) {
	if len(jobs) == 0 {
		fmt.Println("No jobs found.")
		return
	}
	for _, j := range jobs {
		status := j.Status
		if status == "" {
			status = model.JobStatusOpen
		}
		fmt.Printf("%-12s  %-6s  %-10s  %3d  %s\n", j.ID, status, j.Budget, j.ProposalsCount, j.Title)
	}
}

// proposals commands
var proposalsCmd = &cobra.Command{
	Use:   "proposals",
	Short: "Submit and review proposals",
}

var proposalsSubmitCmd = &cobra.Command{
	Use:   "submit JOB_ID",
	Short: "Apply to a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, "SubmitProposal")
		if err != nil {
			return err
		}
		defer a.Close()

		sess, err := a.Session(ctx)
		if err != nil {
			return a.Fail(err)
		}
		job, err := a.Service().GetJobByID(ctx, args[0])
		if err != nil {
			return a.Fail(err)
		}
		if job == nil {
			return a.Fail(fmt.Errorf("job %s not found", args[0]))
		}

		cover := mustString(cmd, "cover")
		if cover == "" {
			cover = a.Assistant().DraftCoverLetter(job.Title)
		}

		var score *int
		if cmd.Flags().Changed("score") {
			v, _ := cmd.Flags().GetInt("score")
			score = &v
		} else if u := sess.User(); u != nil {
			m := a.Assistant().AnalyzeMatch(job.Description, strings.Join(u.Skills, ", "))
			score = &m.Score
		}

		ok, err := a.Service().SubmitProposal(ctx, sess, job.ID, cover, score)
		if err != nil {
			return a.Fail(err)
		}
		if !ok {
			fmt.Printf("You have already applied to %s.\n", job.ID)
			return nil
		}
		fmt.Printf("Application sent for %q.\n", job.Title)
		return nil
	},
}

var proposalsListCmd = &cobra.Command{
	Use:   "list JOB_ID",
	Short: "List proposals for a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "GetProposalsForJob")
		if err != nil {
			return err
		}
		defer a.Close()

		proposals, err := a.Service().GetProposalsForJob(cmd.Context(), args[0])
		if err != nil {
			return a.Fail(err)
		}
		if len(proposals) == 0 {
			fmt.Println("No proposals yet.")
			return nil
		}
		for _, p := range proposals {
			fmt.Printf("%-16s  %-8s  %3d%%  %s\n", p.ID, p.Status, p.MatchScore, p.FreelancerName)
		}
		return nil
	},
}

var proposalsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List the logged-in freelancer's proposals",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "GetMyProposals")
		if err != nil {
			return err
		}
		defer a.Close()

		sess, err := a.Session(cmd.Context())
		if err != nil {
			return a.Fail(err)
		}
		views, err := a.Service().GetMyProposals(cmd.Context(), sess)
		if err != nil {
			return a.Fail(err)
		}
		if len(views) == 0 {
			fmt.Println("No proposals yet.")
			return nil
		}
		for _, v := range views {
			contract := "-"
			if v.Contract != nil {
				contract = v.Contract.ID + " (" + v.Contract.Status + ")"
			}
			fmt.Printf("%-12s  %-8s  %-30s  %s\n", v.Job.ID, v.Proposal.Status, v.Job.Title, contract)
		}
		return nil
	},
}

var hireCmd = &cobra.Command{
	Use:   "hire JOB_ID FREELANCER_NAME AMOUNT",
	Short: "Hire a freelancer for a job",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "HireFreelancer")
		if err != nil {
			return err
		}
		defer a.Close()

		sess, err := a.Session(cmd.Context())
		if err != nil {
			return a.Fail(err)
		}
		id, err := a.Service().HireFreelancer(cmd.Context(), sess, args[0], args[1], args[2])
		if err != nil {
			return a.Fail(err)
		}
		fmt.Printf("Hired %s. Contract %s\n", args[1], id)
		return nil
	},
}

// contract commands
var contractCmd = &cobra.Command{
	Use:   "contract",
	Short: "View and complete contracts",
}

var contractShowCmd = &cobra.Command{
	Use:   "show CONTRACT_ID",
	Short: "Show a contract",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "GetContract")
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.Service().GetContract(cmd.Context(), args[0])
		if err != nil {
			return a.Fail(err)
		}
		if c == nil {
			return a.Fail(fmt.Errorf("contract %s not found", args[0]))
		}
		printContract(c)
		return nil
	},
}

var contractCompleteCmd = &cobra.Command{
	Use:   "complete CONTRACT_ID",
	Short: "Mark a contract completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "CompleteContract")
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.Service().CompleteContract(cmd.Context(), args[0])
		if err != nil {
			return a.Fail(err)
		}
		if c == nil {
			return a.Fail(fmt.Errorf("contract %s not found", args[0]))
		}
		printContract(c)
		return nil
	},
}

func printContract(c *model.Contract) {
	fmt.Printf("Contract %s  [%s]\n", c.ID, c.Status)
	fmt.Printf("Job:        %s (%s)\n", c.JobTitle, c.JobID)
	fmt.Printf("Freelancer: %s (%s)\n", c.FreelancerName, c.FreelancerID)
	fmt.Printf("Client:     %s\n", c.ClientID)
	fmt.Printf("Amount:     %s\n", c.Amount)
	fmt.Printf("Started:    %s\n", c.StartDate)
}

// messaging commands
var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "List chat contacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "GetContacts")
		if err != nil {
			return err
		}
		defer a.Close()

		contacts, err := a.Service().GetContacts(cmd.Context())
		if err != nil {
			return a.Fail(err)
		}
		for _, c := range contacts {
			online := " "
			if c.IsOnline {
				online = "*"
			}
			fmt.Printf("%s %-6s  %-20s  %-10s  %s\n", online, c.ID, c.Name, c.LastMessageTime, c.LastMessage)
		}
		return nil
	},
}

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Read and send messages",
}

var messagesListCmd = &cobra.Command{
	Use:   "list CONTACT_ID",
	Short: "Show the thread with a contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "GetMessages")
		if err != nil {
			return err
		}
		defer a.Close()

		msgs, err := a.Service().GetMessages(cmd.Context(), args[0])
		if err != nil {
			return a.Fail(err)
		}
		if len(msgs) == 0 {
			fmt.Println("No messages.")
			return nil
		}
		for _, m := range msgs {
			who := m.SenderID
			if m.IsMe {
				who = "me"
			}
			fmt.Printf("[%s] %s: %s\n", m.Timestamp, who, m.Text)
			if m.Attachment != nil {
				fmt.Printf("    attachment: %s (%s)\n", m.Attachment.Name, m.Attachment.Size)
			}
		}
		return nil
	},
}

var messagesSendCmd = &cobra.Command{
	Use:   "send CONTACT_ID TEXT",
	Short: "Send a message",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "SendMessage")
		if err != nil {
			return err
		}
		defer a.Close()

		sess, err := a.Session(cmd.Context())
		if err != nil {
			return a.Fail(err)
		}
		msg, err := a.Service().SendMessage(cmd.Context(), sess, args[0], args[1])
		if err != nil {
			return a.Fail(err)
		}
		fmt.Printf("Sent %s\n", msg.ID)
		return nil
	},
}

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Show notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "GetNotifications")
		if err != nil {
			return err
		}
		defer a.Close()

		notifs, err := a.Service().GetNotifications(cmd.Context())
		if err != nil {
			return a.Fail(err)
		}
		if len(notifs) == 0 {
			fmt.Println("No notifications.")
		}
		for _, n := range notifs {
			marker := " "
			if !n.IsRead {
				marker = "•"
			}
			fmt.Printf("%s %-8s  %-10s  %s\n", marker, n.Type, n.Time, n.Text)
		}

		if read, _ := cmd.Flags().GetBool("read"); read {
			changed, err := a.Service().MarkNotificationsRead(cmd.Context())
			if err != nil {
				return a.Fail(err)
			}
			fmt.Printf("Marked %d read.\n", changed)
		}
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all data and restore the seed jobs, contacts and messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "ResetDatabase")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().ResetDatabase(cmd.Context()); err != nil {
			return a.Fail(err)
		}
		fmt.Println("Database reset.")
		return nil
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup DEST",
	Short: "Copy the stored documents to DEST",
	Long: "Copy the stored documents to DEST. A sqlite store is written as a database\n" +
		"file; other stores are written as a directory of JSON documents.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "Backup")
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.Backup(cmd.Context(), args[0])
		if err != nil {
			return a.Fail(err)
		}
		fmt.Printf("Backed up %d documents to %s\n", n, args[0])
		return nil
	},
}

// mustString returns a string flag; unknown flags read as empty.
func mustString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func registerMarketCommands() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(profileCmd)
	for _, name := range []string{"name", "email", "avatar", "headline", "bio", "location", "rate"} {
		profileCmd.Flags().String(name, "", "New "+name)
	}
	profileCmd.Flags().StringSlice("skills", nil, "Comma-separated skills")
	profileCmd.Flags().Bool("suggest-headline", false, "Use a suggested headline for the user's role")
	profileCmd.Flags().String("polish", "", "Polish the bio in a tone (professional, concise, engaging)")

	// jobs subcommands
	jobsCmd.AddCommand(jobsListCmd)
	jobsCmd.AddCommand(jobsShowCmd)
	jobsCmd.AddCommand(jobsPostCmd)
	jobsPostCmd.Flags().StringP("description", "d", "", "Job description (drafted from the title when empty)")
	jobsCmd.AddCommand(jobsMineCmd)
	rootCmd.AddCommand(jobsCmd)

	// proposals subcommands
	proposalsCmd.AddCommand(proposalsSubmitCmd)
	proposalsSubmitCmd.Flags().StringP("cover", "c", "", "Cover letter (drafted from the job title when empty)")
	proposalsSubmitCmd.Flags().Int("score", 0, "Match score (estimated from your skills when unset)")
	proposalsCmd.AddCommand(proposalsListCmd)
	proposalsCmd.AddCommand(proposalsMineCmd)
	rootCmd.AddCommand(proposalsCmd)

	rootCmd.AddCommand(hireCmd)

	contractCmd.AddCommand(contractShowCmd)
	contractCmd.AddCommand(contractCompleteCmd)
	rootCmd.AddCommand(contractCmd)

	rootCmd.AddCommand(contactsCmd)
	messagesCmd.AddCommand(messagesListCmd)
	messagesCmd.AddCommand(messagesSendCmd)
	rootCmd.AddCommand(messagesCmd)

	rootCmd.AddCommand(notificationsCmd)
	notificationsCmd.Flags().Bool("read", false, "Mark all notifications read after listing")
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(backupCmd)
}
