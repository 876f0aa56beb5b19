// ABOUTME: Operator CLI for the taskboard API
// ABOUTME: Logs in, inspects accounts, and lists projects and tasks over HTTP

package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"golang.org/x/term"
)

const banner = `
 _            _    _                         _
| |_ __ _ ___| | _| |__   ___   __ _ _ __ __| |
| __/ _' / __| |/ / '_ \ / _ \ / _' | '__/ _' |
| || (_| \__ \   <| |_) | (_) | (_| | | | (_| |
 \__\__,_|___/_|\_\_.__/ \___/ \__,_|_|  \__,_|  admin
`

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// TASKBOARD_HOST sets the API base URL; defaults to a local server.
	baseURL := os.Getenv("TASKBOARD_HOST")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "login":
		err = cmdLogin(ctx, baseURL, args)
	case "me":
		err = cmdMe(ctx, baseURL)
	case "projects":
		err = cmdProjects(ctx, baseURL)
	case "tasks":
		err = cmdTasks(ctx, baseURL, args)
	case "status":
		err = cmdStatus(ctx, baseURL)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()
	fmt.Println("Usage: taskboard-admin <command> [args]")
	fmt.Println()
	yellow.Println("Commands:")
	fmt.Println("  login <handle>          Log in and save a token")
	fmt.Println("  me                      Show the logged-in account")
	fmt.Println("  status                  Show server health and identity")
	fmt.Println("  projects                List your projects")
	fmt.Println("  tasks [--status S]      List your tasks, optionally filtered")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  TASKBOARD_HOST          API base URL (default http://localhost:8080)")
	fmt.Println("  TASKBOARD_TOKEN         Bearer token; overrides the saved token file")
}

// tokenPath returns where login stores the bearer token.
func tokenPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "token"
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "taskboard", "token")
}

func getToken() string {
	if token := os.Getenv("TASKBOARD_TOKEN"); token != "" {
		return token
	}
	data, err := os.ReadFile(tokenPath())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func saveToken(token string) error {
	path := tokenPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}

type principal struct {
	ID      int64  `json:"id"`
	Handle  string `json:"handle"`
	Address string `json:"address"`
}

type authResponse struct {
	Token            string    `json:"token"`
	TokenType        string    `json:"tokenType"`
	ExpiresInSeconds int64     `json:"expiresInSeconds"`
	Principal        principal `json:"principal"`
}

type project struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

type task struct {
	ID        int64   `json:"id"`
	ProjectID *int64  `json:"project_id"`
	Title     string  `json:"title"`
	Status    string  `json:"status"`
	Priority  string  `json:"priority"`
	DueDate   *string `json:"due_date"`
}

// apiCall issues a request against the API and decodes the response into out.
// Non-2xx responses are surfaced with the server's error message.
func apiCall(ctx context.Context, method, url, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &apiErr) == nil {
			if apiErr.Message != "" {
				return fmt.Errorf("%s (status %d)", apiErr.Message, resp.StatusCode)
			}
			if apiErr.Error != "" {
				return fmt.Errorf("%s (status %d)", apiErr.Error, resp.StatusCode)
			}
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func cmdLogin(ctx context.Context, baseURL string, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: taskboard-admin login <handle>")
	}
	handle := args[0]

	credential, err := promptCredential()
	if err != nil {
		return err
	}

	var resp authResponse
	err = apiCall(ctx, http.MethodPost, baseURL+"/api/login", "", map[string]string{
		"handle":     handle,
		"credential": credential,
	}, &resp)
	if err != nil {
		return err
	}

	if err := saveToken(resp.Token); err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Printf("Logged in as %s\n", resp.Principal.Handle)
	fmt.Printf("Token saved to %s (expires in %ds)\n", tokenPath(), resp.ExpiresInSeconds)
	return nil
}

// promptCredential reads the password without echo when stdin is a terminal.
func promptCredential() (string, error) {
	fmt.Print("Password: ")
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func cmdMe(ctx context.Context, baseURL string) error {
	token := getToken()
	if token == "" {
		return fmt.Errorf("no token; run 'taskboard-admin login <handle>' first")
	}

	var me principal
	if err := apiCall(ctx, http.MethodGet, baseURL+"/api/me", token, nil, &me); err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	cyan.Println("Identity")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "  ID:\t%d\n", me.ID)
	fmt.Fprintf(w, "  Handle:\t%s\n", me.Handle)
	fmt.Fprintf(w, "  Address:\t%s\n", me.Address)
	return w.Flush()
}

func cmdStatus(ctx context.Context, baseURL string) error {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	var health map[string]string
	if err := apiCall(ctx, http.MethodGet, baseURL+"/health", "", nil, &health); err != nil {
		red.Printf("Server:  unreachable (%v)\n", err)
		return nil
	}
	green.Printf("Server:  %s\n", health["status"])

	var ready map[string]string
	if err := apiCall(ctx, http.MethodGet, baseURL+"/health/ready", "", nil, &ready); err != nil {
		red.Printf("Store:   %v\n", err)
	} else {
		green.Printf("Store:   %s\n", ready["status"])
	}

	token := getToken()
	if token == "" {
		fmt.Println("Token:   none saved")
		return nil
	}
	var me principal
	if err := apiCall(ctx, http.MethodGet, baseURL+"/api/me", token, nil, &me); err != nil {
		red.Printf("Token:   invalid (%v)\n", err)
		return nil
	}
	green.Printf("Token:   valid, logged in as %s\n", me.Handle)
	return nil
}

func cmdProjects(ctx context.Context, baseURL string) error {
	token := getToken()
	if token == "" {
		return fmt.Errorf("no token; run 'taskboard-admin login <handle>' first")
	}

	var projects []project
	if err := apiCall(ctx, http.MethodGet, baseURL+"/api/projects", token, nil, &projects); err != nil {
		return err
	}

	if len(projects) == 0 {
		fmt.Println("No projects")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION\tCREATED")
	for _, p := range projects {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Name, p.Description, p.CreatedAt)
	}
	return w.Flush()
}

func cmdTasks(ctx context.Context, baseURL string, args []string) error {
	token := getToken()
	if token == "" {
		return fmt.Errorf("no token; run 'taskboard-admin login <handle>' first")
	}

	var status string
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--status":
			if i+1 >= len(args) {
				return fmt.Errorf("--status requires a value")
			}
			status = args[i+1]
			i++
		case strings.HasPrefix(args[i], "--status="):
			status = strings.TrimPrefix(args[i], "--status=")
		default:
			return fmt.Errorf("unknown argument: %s", args[i])
		}
	}

	url := baseURL + "/api/tasks"
	if status != "" {
		url += "?status=" + status
	}

	var tasks []task
	if err := apiCall(ctx, http.MethodGet, url, token, nil, &tasks); err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY\tPROJECT\tDUE")
	for _, t := range tasks {
		projectCol := "-"
		if t.ProjectID != nil {
			projectCol = fmt.Sprintf("%d", *t.ProjectID)
		}
		dueCol := "-"
		if t.DueDate != nil {
			dueCol = *t.DueDate
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Status, t.Priority, projectCol, dueCol)
	}
	return w.Flush()
}
