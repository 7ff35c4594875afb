package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const baseURL = "http://localhost:8080"

// Smoke test against a running server: extract a small graph, read it back,
// then ask a question about it.
func main() {
	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting smoke test...")

	fmt.Println("1. Extracting graph from text...")
	form := url.Values{"text": {"Alice works at Acme. Bob manages Alice."}}
	resp, err := http.PostForm(baseURL+"/extract", form)
	if err != nil || resp.StatusCode != http.StatusOK {
		fail("extract", err, resp)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	fmt.Printf("   extracted: %s\n", truncate(string(body), 200))

	fmt.Println("2. Reading graph back from store...")
	resp, err = http.Get(baseURL + "/graph")
	if err != nil || resp.StatusCode != http.StatusOK {
		fail("graph", err, resp)
	}
	resp.Body.Close()

	fmt.Println("3. Asking a question...")
	payload, _ := json.Marshal(map[string]string{"question": "Where does Alice work?"})
	resp, err = http.Post(baseURL+"/chat", "application/json", bytes.NewReader(payload))
	if err != nil || resp.StatusCode != http.StatusOK {
		fail("chat", err, resp)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()

	var answer struct {
		Answer string `json:"answer"`
		Path   *struct {
			Nodes []string `json:"nodes"`
		} `json:"path"`
	}
	if err := json.Unmarshal(body, &answer); err != nil {
		fail("chat decode", err, nil)
	}

	fmt.Printf("   answer: %s\n", truncate(answer.Answer, 200))
	if answer.Path != nil {
		fmt.Printf("   path: %s\n", strings.Join(answer.Path.Nodes, " -> "))
	}

	fmt.Println("PASSED")
}

func fail(step string, err error, resp *http.Response) {
	if err != nil {
		fmt.Printf("FAILED: %s: %v\n", step, err)
	} else if resp != nil {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("FAILED: %s: status %d: %s\n", step, resp.StatusCode, string(body))
	} else {
		fmt.Printf("FAILED: %s\n", step)
	}
	os.Exit(1)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
