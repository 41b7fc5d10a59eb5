package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"moments/internal/client"
	"moments/internal/models/request_models"
	"moments/internal/models/response_models"
	"moments/pkg/logger"
)

func main() {
	if err := newApp(os.Stdin, os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp(in io.Reader, out io.Writer) *cli.App {
	return &cli.App{
		Name:   "momentsctl",
		Usage:  "manage shared activities from the terminal",
		Reader: in,
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "server", Value: "http://localhost:8080", EnvVars: []string{"MOMENTS_URL"}, Usage: "API base URL"},
			&cli.StringFlag{Name: "token", EnvVars: []string{"MOMENTS_TOKEN"}, Usage: "session token from `momentsctl login`"},
			&cli.DurationFlag{Name: "timeout", Value: 15 * time.Second},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
		},
		Commands: []*cli.Command{
			loginCommand(),
			listCommand(),
			addCommand(),
			editCommand(),
			deleteCommand(),
			labelsCommand(),
			calendarCommand(),
		},
	}
}

func apiClient(c *cli.Context) *client.HTTPClient {
	return client.NewHTTPClient(c.String("server"), c.Duration("timeout")).WithToken(c.String("token"))
}

func loadState(c *cli.Context) (*client.State, error) {
	log := logger.NewNop()
	if c.Bool("verbose") {
		l, err := logger.New("development")
		if err != nil {
			return nil, err
		}
		log = l
	}
	state := client.NewState(apiClient(c), log)
	if err := state.Reload(c.Context); err != nil {
		return nil, err
	}
	return state, nil
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:      "login",
		Usage:     "log in and print a session token",
		ArgsUsage: "<ayoub|medina>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"MOMENTS_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("login takes exactly one user name", 2)
			}
			resp, err := apiClient(c).Login(c.Context, c.Args().First(), c.String("password"))
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "Logged in as %s until %s\n", resp.Name, resp.ExpiresAt.Local().Format(time.RFC1123))
			fmt.Fprintf(c.App.Writer, "export MOMENTS_TOKEN=%s\n", resp.Token)
			return nil
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list activities",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "label", Value: client.FilterAll},
			&cli.StringFlag{Name: "sort", Value: client.SortByDate, Usage: "date or rating"},
			&cli.StringFlag{Name: "order", Value: client.OrderNone, Usage: "asc, desc or none"},
			&cli.StringFlag{Name: "bucket", Value: "all", Usage: "all, future, past or undated"},
		},
		Action: func(c *cli.Context) error {
			state, err := loadState(c)
			if err != nil {
				return err
			}
			activities, err := client.Sort(state.Filter(c.String("label")), c.String("sort"), c.String("order"))
			if err != nil {
				return err
			}

			switch bucket := c.String("bucket"); bucket {
			case "all":
			case "future", "past", "undated":
				p := client.PartitionByDate(activities, time.Now())
				activities = map[string][]response_models.ActivityResponse{
					"future": p.Future, "past": p.Past, "undated": p.Undated,
				}[bucket]
			default:
				return cli.Exit("bucket must be all, future, past or undated", 2)
			}

			printActivities(c.App.Writer, activities)
			return nil
		},
	}
}

func activityFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title"},
		&cli.StringFlag{Name: "date", Usage: "YYYY-MM-DD"},
		&cli.StringFlag{Name: "description"},
		&cli.StringFlag{Name: "address"},
		&cli.StringSliceFlag{Name: "label"},
		&cli.StringFlag{Name: "picture"},
		&cli.StringFlag{Name: "moment"},
		&cli.IntFlag{Name: "ayoub", Usage: "Ayoub's rating 1-10"},
		&cli.IntFlag{Name: "medina", Usage: "Medina's rating 1-10"},
	}
}

// applyActivityFlags overlays the flags the user actually set onto req.
func applyActivityFlags(c *cli.Context, req *request_models.ActivityRequest) {
	if c.IsSet("title") {
		req.Title = c.String("title")
	}
	if c.IsSet("date") {
		req.Date = c.String("date")
	}
	if c.IsSet("description") {
		req.Description = c.String("description")
	}
	if c.IsSet("address") {
		req.Address = c.String("address")
	}
	if c.IsSet("label") {
		req.Labels = c.StringSlice("label")
	}
	if c.IsSet("picture") {
		req.Picture = c.String("picture")
	}
	if c.IsSet("moment") {
		req.Moment = c.String("moment")
	}
	if c.IsSet("ayoub") {
		v := c.Int("ayoub")
		req.AyoubRating = &v
	}
	if c.IsSet("medina") {
		v := c.Int("medina")
		req.MedinaRating = &v
	}
}

func addCommand() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "add an activity",
		Flags: activityFlags(),
		Action: func(c *cli.Context) error {
			state, err := loadState(c)
			if err != nil {
				return err
			}
			var req request_models.ActivityRequest
			applyActivityFlags(c, &req)

			created, err := state.Add(c.Context, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "Added #%d %s\n", created.ID, created.Title)
			return nil
		},
	}
}

func editCommand() *cli.Command {
	return &cli.Command{
		Name:  "edit",
		Usage: "replace fields of an existing activity",
		Flags: append([]cli.Flag{&cli.UintFlag{Name: "id", Required: true}}, activityFlags()...),
		Action: func(c *cli.Context) error {
			state, err := loadState(c)
			if err != nil {
				return err
			}
			id := c.Uint("id")
			if err := state.BeginEdit(id); err != nil {
				return err
			}

			var current response_models.ActivityResponse
			for _, a := range state.Activities() {
				if a.ID == id {
					current = a
				}
			}
			req := requestFromActivity(current)
			applyActivityFlags(c, &req)

			updated, err := state.Edit(c.Context, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "Updated #%d %s\n", updated.ID, updated.Title)
			return nil
		},
	}
}

func requestFromActivity(a response_models.ActivityResponse) request_models.ActivityRequest {
	ayoub, medina := a.AyoubRating, a.MedinaRating
	return request_models.ActivityRequest{
		ID:           a.ID,
		Title:        a.Title,
		Description:  a.Description,
		Address:      a.Address,
		Labels:       a.Labels,
		Picture:      a.Picture,
		AyoubRating:  &ayoub,
		MedinaRating: &medina,
		Date:         a.Date,
		Moment:       a.Moment,
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "delete an activity",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "id", Required: true},
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "skip the confirmation prompt"},
		},
		Action: func(c *cli.Context) error {
			state, err := loadState(c)
			if err != nil {
				return err
			}

			var confirmer client.Confirmer = promptConfirmer(c.App.Reader, c.App.Writer)
			if c.Bool("yes") {
				confirmer = nil
			}
			deleted, err := state.Delete(c.Context, c.Uint("id"), confirmer)
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintln(c.App.Writer, "Cancelled")
				return nil
			}
			fmt.Fprintf(c.App.Writer, "Deleted #%d\n", c.Uint("id"))
			return nil
		},
	}
}

func promptConfirmer(in io.Reader, out io.Writer) client.ConfirmFunc {
	reader := bufio.NewReader(in)
	return func(a response_models.ActivityResponse) bool {
		fmt.Fprintf(out, "Delete %q (%s)? [y/N] ", a.Title, a.Date)
		line, _ := reader.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
}

func labelsCommand() *cli.Command {
	return &cli.Command{
		Name:  "labels",
		Usage: "list every label in use",
		Action: func(c *cli.Context) error {
			state, err := loadState(c)
			if err != nil {
				return err
			}
			for _, l := range state.Labels() {
				fmt.Fprintln(c.App.Writer, l)
			}
			return nil
		},
	}
}

func calendarCommand() *cli.Command {
	return &cli.Command{
		Name:  "calendar",
		Usage: "show a month or week of activities",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "view", Value: "month"},
			&cli.StringFlag{Name: "date", Usage: "YYYY-MM-DD, defaults to today"},
		},
		Action: func(c *cli.Context) error {
			view, err := apiClient(c).Calendar(c.Context, c.String("view"), c.String("date"))
			if err != nil {
				return err
			}
			printCalendar(c.App.Writer, view)
			return nil
		},
	}
}

func printActivities(out io.Writer, activities []response_models.ActivityResponse) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTITLE\tRATING\tLABELS\tADDRESS")
	for _, a := range activities {
		date := a.Date
		if date == "" {
			date = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%s\t%s\n",
			a.ID, date, a.Title, a.AverageRating(), strings.Join(a.Labels, ","), a.Address)
	}
	_ = tw.Flush()
}

func printCalendar(out io.Writer, view *response_models.CalendarView) {
	fmt.Fprintf(out, "%s %d\n", view.MonthName, view.Year)
	for _, day := range view.Days {
		if len(day.Activities) == 0 && !day.IsToday {
			continue
		}
		marker := " "
		if day.IsToday {
			marker = "*"
		}
		titles := make([]string, 0, len(day.Activities))
		for _, a := range day.Activities {
			titles = append(titles, a.Title)
		}
		fmt.Fprintf(out, "%s %s  %s\n", marker, day.Date, strings.Join(titles, ", "))
	}
}
