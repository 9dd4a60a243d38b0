// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

// commands.go holds the scripted (non-TUI) subcommands: login/logout,
// identity inspection, equipment and reservation listings, export, and
// the raw table listing. These print plain text for use in scripts.

package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/resvlab/resv/internal/api"
	"github.com/resvlab/resv/internal/dateutil"
	"github.com/resvlab/resv/internal/i18n"
)

// loginCmd authenticates an administrator and persists the session.
var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Log in as an administrator",
	Long: `Prompts for credentials, exchanges them for a bearer token, and
persists the session so subsequent commands and the TUI run
authenticated.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var username string
		if len(args) > 0 {
			username = args[0]
		} else {
			fmt.Print(i18n.T("login.username") + ": ")
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				log.Fatalf("read username: %v", err)
			}
			username = strings.TrimSpace(line)
		}

		fmt.Print(i18n.T("login.password") + ": ")
		pw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			log.Fatalf("read password: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if !app.session.Login(ctx, username, string(pw)) {
			fmt.Println(i18n.T("login.failed"))
			os.Exit(1)
		}
		fmt.Println(i18n.T("login.success"))
	},
}

// logoutCmd clears the persisted session.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the persisted session",
	Run: func(cmd *cobra.Command, args []string) {
		app.session.Logout(context.Background())
		fmt.Println(i18n.T("session.not_logged_in"))
	},
}

// whoamiCmd prints the current identity and, when the token is a
// readable JWT, its expiry. The token is not verified locally; the
// backend is the authority.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session identity",
	Run: func(cmd *cobra.Command, args []string) {
		sess := app.session.Session()
		if !sess.IsLoggedIn() {
			fmt.Println(i18n.T("session.not_logged_in"))
			return
		}
		fmt.Printf("%s (%s)\n", sess.User.Username, sess.User.Role)
		claims := jwt.MapClaims{}
		if _, _, err := jwt.NewParser().ParseUnverified(sess.Token, claims); err == nil {
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				fmt.Printf("%s: %s\n", i18n.T("session.expires"), exp.Format(time.RFC3339))
			}
		}
	},
}

// equipmentCmd lists equipment.
var equipmentCmd = &cobra.Command{
	Use:   "equipment",
	Short: "List equipment",
	Run: func(cmd *cobra.Command, args []string) {
		category, _ := cmd.Flags().GetString("category")
		search, _ := cmd.Flags().GetString("search")
		limit, _ := cmd.Flags().GetInt("limit")

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		list, err := app.api.ListEquipment(ctx, api.EquipmentQuery{
			Category: category,
			Search:   search,
			Limit:    limit,
		})
		if err != nil {
			os.Exit(1)
		}
		for _, eq := range list.Items {
			fmt.Printf("%-6d %-32s %-16s %s\n", eq.ID, eq.Name, eq.Category, eq.Status)
		}
		fmt.Printf("%s: %d\n", i18n.T("common.total"), list.Total)
	},
}

// reservationsCmd lists reservations (requires admin session).
var reservationsCmd = &cobra.Command{
	Use:   "reservations",
	Short: "List reservations",
	Run: func(cmd *cobra.Command, args []string) {
		status, _ := cmd.Flags().GetString("status")
		user, _ := cmd.Flags().GetString("user")
		limit, _ := cmd.Flags().GetInt("limit")

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		list, err := app.api.ListReservations(ctx, api.ReservationQuery{
			Status:   status,
			UserName: user,
			Limit:    limit,
		})
		if err != nil {
			os.Exit(1)
		}
		for _, r := range list.Items {
			start := dateutil.FormatDate(r.StartDatetime, "YYYY/MM/DD HH:mm", true)
			fmt.Printf("%-20s %-28s %-14s %-16s %s\n",
				r.ReservationNumber, r.EquipmentName, r.UserName, start, r.Status)
		}
		fmt.Printf("%s: %d\n", i18n.T("common.total"), list.Total)
	},
}

// reservationCmd shows or cancels one reservation, addressed by code or
// by "RN-..." number.
var reservationCmd = &cobra.Command{
	Use:   "reservation <code-or-number>",
	Short: "Show or cancel one reservation",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ident := args[0]
		doCancel, _ := cmd.Flags().GetBool("cancel")

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		var out api.ReservationResult
		var err error
		if api.IsReservationNumber(ident) {
			out, err = app.api.GetReservationByNumber(ctx, ident)
		} else {
			out, err = app.api.GetReservationByCode(ctx, ident, api.Ref{})
		}
		if err != nil {
			os.Exit(1)
		}
		r := out.Data

		if doCancel {
			number := api.NumberFromValue(r.ReservationNumber)
			if _, err := app.api.CancelReservation(ctx, r.ReservationCode, number); err != nil {
				os.Exit(1)
			}
			fmt.Println(i18n.T("reservation.cancelled"))
			return
		}

		period := dateutil.FormatDate(r.StartDatetime, "YYYY/MM/DD HH:mm", true) +
			" - " + dateutil.FormatDate(r.EndDatetime, "YYYY/MM/DD HH:mm", true)
		fmt.Printf("%s: %s\n", i18n.T("reservation.number"), r.ReservationNumber)
		fmt.Printf("%s: %s\n", i18n.T("reservation.code"), r.ReservationCode)
		fmt.Printf("%s: %s\n", i18n.T("reservation.equipment"), r.EquipmentName)
		fmt.Printf("%s: %s\n", i18n.T("reservation.user"), r.UserName)
		fmt.Printf("%s: %s\n", i18n.T("reservation.period"), period)
		fmt.Printf("%s: %s\n", i18n.T("reservation.status"), r.Status)
	},
}

// exportCmd downloads the reservation export to a file. The payload is
// binary (xlsx/csv) and written verbatim.
var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export reservations to a file",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		path := fmt.Sprintf("reservations_%s.%s", time.Now().Format("20060102_150405"), extFor(format))
		if len(args) > 0 {
			path = args[0]
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		blob, err := app.api.ExportReservations(ctx, api.ExportRequest{
			ExportFormat: format,
			ExportScope:  "all",
		})
		if err != nil {
			os.Exit(1)
		}
		if err := os.WriteFile(path, blob, 0o644); err != nil {
			log.Fatalf("write export: %v", err)
		}
		fmt.Printf("%s: %s (%d bytes)\n", i18n.T("reservation.export_done"), path, len(blob))
	},
}

func extFor(format string) string {
	if format == "csv" {
		return "csv"
	}
	return "xlsx"
}

// announcementsCmd prints the active announcements.
var announcementsCmd = &cobra.Command{
	Use:   "announcements",
	Short: "List active announcements",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		anns, err := app.api.ListAnnouncements(ctx, 0, 20)
		if err != nil {
			os.Exit(1)
		}
		for _, a := range anns {
			fmt.Printf("## %s\n%s\n\n", a.Title, a.Content)
		}
	},
}

// dbTablesCmd lists the backend's raw tables (superadmin).
var dbTablesCmd = &cobra.Command{
	Use:   "db-tables",
	Short: "List backend database tables",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		tables, err := app.api.DBTables(ctx)
		if err != nil {
			os.Exit(1)
		}
		for _, t := range tables {
			fmt.Println(t)
		}
	},
}

func init() {
	equipmentCmd.Flags().String("category", "", "Filter by category name")
	equipmentCmd.Flags().String("search", "", "Search by name")
	equipmentCmd.Flags().Int("limit", 50, "Page size")

	reservationsCmd.Flags().String("status", "", "Filter by status")
	reservationsCmd.Flags().String("user", "", "Filter by user name")
	reservationsCmd.Flags().Int("limit", 50, "Page size")

	reservationCmd.Flags().Bool("cancel", false, "Cancel the reservation instead of showing it")

	exportCmd.Flags().String("format", "excel", `Export format ("excel", "csv")`)
}
