// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	sid := strings.TrimSpace(os.Getenv("TWILIO_ACCOUNT_SID"))
	token := strings.TrimSpace(os.Getenv("TWILIO_AUTH_TOKEN"))
	from := strings.TrimSpace(os.Getenv("TWILIO_PHONE_NUMBER"))
	to := strings.TrimSpace(os.Getenv("YOUR_PHONE_NUMBER"))
	apiURL := strings.TrimSpace(os.Getenv("TOURS_API_URL"))
	pageURL := strings.TrimSpace(os.Getenv("TOURS_PAGE_URL"))
	strategy := strings.TrimSpace(os.Getenv("PROBE_STRATEGY"))
	addr := strings.TrimSpace(os.Getenv("ADDR"))
	poll := strings.TrimSpace(os.Getenv("POLL_SPEC"))

	if sid == "" || token == "" || from == "" || to == "" {
		fail("Twilio settings incomplete (TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN, TWILIO_PHONE_NUMBER, YOUR_PHONE_NUMBER) — notifications will always fail.")
	}
	ok("Twilio settings present")

	for name, v := range map[string]string{"TWILIO_PHONE_NUMBER": from, "YOUR_PHONE_NUMBER": to} {
		if !strings.HasPrefix(v, "+") {
			warn(name + " is not in E.164 form (+<country><number>); the provider may reject it.")
		}
	}

	switch strategy {
	case "", "api":
		if apiURL == "" {
			fail("TOURS_API_URL is empty and strategy is api.")
		}
		ok("TOURS_API_URL present")
	case "page":
		if pageURL == "" {
			fail("TOURS_PAGE_URL is empty and strategy is page.")
		}
		ok("TOURS_PAGE_URL present")
	case "auto":
		if apiURL == "" || pageURL == "" {
			fail("strategy auto needs both TOURS_API_URL and TOURS_PAGE_URL.")
		}
		ok("both probe URLs present")
	default:
		fail("PROBE_STRATEGY must be api, page or auto; got " + strategy)
	}

	if addr == "" {
		warn("ADDR is empty; the default bind address will be used.")
	} else {
		ok("ADDR=" + addr)
	}

	if poll == "" {
		warn("POLL_SPEC empty — checks run only when an external scheduler hits /check.")
	} else {
		ok("POLL_SPEC=" + poll)
	}

	ok("preflight passed")
}
