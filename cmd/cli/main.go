package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"
)

func main() {
	api := os.Getenv("API_BASE")
	if api == "" {
		api = "http://localhost:8080"
	}
	client := &http.Client{Timeout: 15 * time.Second}
	if key := os.Getenv("API_KEY"); key != "" {
		client.Transport = keyTransport{key: key, next: http.DefaultTransport}
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Enter a site URL to monitor (e.g., https://example.com): ")
	raw, _ := reader.ReadString('\n')
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		fmt.Println("Invalid URL.")
		os.Exit(1)
	}

	resp, err := client.Post(api+"/ping?url="+url.QueryEscape(raw), "application/json", nil)
	if err != nil {
		fmt.Println("Error contacting API:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		fmt.Println("API returned status:", resp.Status, e.Error)
		os.Exit(1)
	}
	var out struct {
		URL    string `json:"url"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		fmt.Println("Bad response:", err)
		os.Exit(1)
	}
	fmt.Printf("%s is %s (now monitored)\n\n", out.URL, out.Status)

	printStatus(client, api)
}

// keyTransport adds X-API-Key to every request.
type keyTransport struct {
	key  string
	next http.RoundTripper
}

func (t keyTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("X-API-Key", t.key)
	return t.next.RoundTrip(r)
}

func printStatus(client *http.Client, api string) {
	resp, err := client.Get(api + "/status")
	if err != nil {
		fmt.Println("Error contacting API:", err)
		return
	}
	defer resp.Body.Close()

	var all map[string]struct {
		Status      string `json:"status"`
		LastChecked string `json:"last_checked"`
		Code        int    `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&all); err != nil {
		fmt.Println("Bad status response:", err)
		return
	}
	urls := make([]string, 0, len(all))
	for u := range all {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	for _, u := range urls {
		st := all[u]
		code := "-"
		if st.Code != 0 {
			code = fmt.Sprint(st.Code)
		}
		fmt.Printf("%-5s %-4s %s  %s\n", st.Status, code, st.LastChecked, u)
	}
}
