package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pr-poehali-dev/site-clone-poehali/internal/api/response"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case *model.User:
		o.printUser(v)
	case *response.Auth:
		o.printAuthResult(v)
	case *model.Stats:
		o.printStats(v)
	case []model.User:
		o.printUsers(v)
	case *response.EnergyUpdate:
		fmt.Printf("Energy updated. New balance: %d\n", v.NewEnergy)
	case *response.InfiniteEnergyUpdate:
		if v.IsInfiniteEnergy {
			fmt.Println("Infinite energy enabled")
		} else {
			fmt.Println("Infinite energy disabled")
		}
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printUser(u *model.User) {
	fmt.Printf("User: %s <%s> (id %d)\n", u.Username, u.Email, u.ID)
	if u.IsInfiniteEnergy {
		fmt.Println("Energy: infinite")
	} else {
		fmt.Printf("Energy: %d\n", u.Energy)
	}
	if u.IsAdmin {
		fmt.Println("Role: admin")
	}
	if u.LastLogin != nil {
		fmt.Printf("Last login: %s\n", u.LastLogin.Format(time.RFC3339))
	}
}

func (o *Output) printAuthResult(a *response.Auth) {
	o.printUser(&a.User)
	fmt.Printf("Token: %s\n", a.Token)
}

func (o *Output) printStats(s *model.Stats) {
	fmt.Printf("Total users: %d\n", s.TotalUsers)
	fmt.Printf("Active sessions: %d\n", s.ActiveSessions)
	fmt.Printf("Total energy: %d\n", s.TotalEnergy)
	fmt.Printf("Average energy: %.2f\n", s.AvgEnergy)
	if len(s.Transactions) > 0 {
		fmt.Println("Transactions:")
		for _, tx := range s.Transactions {
			fmt.Printf("  %s: %d (total %+d)\n", tx.Type, tx.Count, tx.Total)
		}
	}
}

func (o *Output) printUsers(users []model.User) {
	fmt.Printf("Users (%d):\n", len(users))
	for _, u := range users {
		energy := fmt.Sprintf("%d", u.Energy)
		if u.IsInfiniteEnergy {
			energy = "infinite"
		}
		role := ""
		if u.IsAdmin {
			role = " [admin]"
		}
		fmt.Printf("  %4d  %s <%s>  energy: %s%s\n", u.ID, u.Username, u.Email, energy, role)
	}
}
