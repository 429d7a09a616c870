package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/chris/grafik/pkg/models"
)

var (
	personPosition string
	personPhone    string
	personEmail    string
)

var personCmd = &cobra.Command{
	Use:   "person",
	Short: "Manage responsible persons",
}

var personAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a responsible person",
	Args:  cobra.ExactArgs(1),
	RunE:  runPersonAdd,
}

var personListCmd = &cobra.Command{
	Use:   "list",
	Short: "List responsible persons by name",
	Args:  cobra.NoArgs,
	RunE:  runPersonList,
}

var personDeleteCmd = &cobra.Command{
	Use:   "delete <person-id>",
	Short: "Delete a responsible person",
	Long:  "Delete a person. Events that referenced them keep the ID and show \"-\" as responsible.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPersonDelete,
}

func init() {
	rootCmd.AddCommand(personCmd)
	personCmd.AddCommand(personAddCmd, personListCmd, personDeleteCmd)

	personAddCmd.Flags().StringVar(&personPosition, "position", "", "Position or role")
	personAddCmd.Flags().StringVar(&personPhone, "phone", "", "Phone number")
	personAddCmd.Flags().StringVar(&personEmail, "email", "", "Email address")
}

func runPersonAdd(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return errors.New("name is required")
	}

	database, err := openDB()
	if err != nil {
		return err
	}
	defer database.Close()

	p := &models.Person{Name: name, Position: personPosition, Phone: personPhone, Email: personEmail}
	id, err := database.CreatePerson(cmd.Context(), p)
	if err != nil {
		return fmt.Errorf("failed to create person: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Person created: %d\n", id)
	return nil
}

func runPersonList(cmd *cobra.Command, args []string) error {
	database, err := openDB()
	if err != nil {
		return err
	}
	defer database.Close()

	persons, err := database.ListPersons(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(persons) == 0 {
		fmt.Fprintln(out, "Нет ответственных.")
		return nil
	}

	nameWidth := 0
	for _, p := range persons {
		nameWidth = max(nameWidth, ansi.StringWidth(p.Name))
	}
	for _, p := range persons {
		name := p.Name + strings.Repeat(" ", nameWidth-ansi.StringWidth(p.Name))
		line := strings.TrimRight(fmt.Sprintf("%4d  %s  %s", p.ID, name, strings.Join(nonEmpty(p.Position, p.Phone, p.Email), "  ")), " ")
		fmt.Fprintln(out, line)
	}
	return nil
}

func runPersonDelete(cmd *cobra.Command, args []string) error {
	id, err := parseEventID(args[0])
	if err != nil {
		return err
	}

	database, err := openDB()
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.DeletePerson(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete person %d: %w", id, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Person deleted: %d\n", id)
	return nil
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
