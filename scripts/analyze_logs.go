package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	transitionRegex = regexp.MustCompile(`Booking \d+ moved \w+ -> (\w+) by user`)
	requestRegex    = regexp.MustCompile(`: (GET|POST|PATCH|PUT|DELETE|OPTIONS) (\S+) from \S+ - Status: (\d+)`)
	messageRegex    = regexp.MustCompile(`\.go:\d+: (.*)$`)
	idRegex         = regexp.MustCompile(`\d+`)
)

type LogStats struct {
	TotalErrors       int
	LoginSuccess      int
	LoginFailures     int
	OTPIssued         int
	BookingsCreated   int
	Transitions       map[string]int
	PaymentsVerified  int
	PaymentMismatches int
	FailedRequests    int
	FailingPaths      map[string]int
	ErrorPatterns     map[string]int
}

func newLogStats() *LogStats {
	return &LogStats{
		Transitions:   make(map[string]int),
		FailingPaths:  make(map[string]int),
		ErrorPatterns: make(map[string]int),
	}
}

func main() {
	logDir := flag.String("dir", "./logs", "directory holding the service logs")
	day := flag.String("date", time.Now().Format("2006-01-02"), "log date to analyse")
	flag.Parse()

	stats := newLogStats()

	if err := analyzeFile(filepath.Join(*logDir, fmt.Sprintf("error-%s.log", *day)), stats.analyzeErrors); err != nil {
		fmt.Println(err)
	}
	if err := analyzeFile(filepath.Join(*logDir, fmt.Sprintf("info-%s.log", *day)), stats.analyzeInfo); err != nil {
		fmt.Println(err)
	}

	stats.printReport(os.Stdout, *day)
}

func analyzeFile(path string, analyze func(io.Reader)) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening log file %s: %v", path, err)
	}
	defer file.Close()
	analyze(file)
	return nil
}

func (s *LogStats) analyzeErrors(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "ERROR: ") {
			// continuation of a stack trace
			continue
		}
		s.TotalErrors++

		switch {
		case strings.Contains(line, "Login attempt failed"), strings.Contains(line, "Admin login failed"):
			s.LoginFailures++
		case strings.Contains(line, "Signature mismatch for payment"):
			s.PaymentMismatches++
		}

		if m := messageRegex.FindStringSubmatch(line); m != nil {
			s.ErrorPatterns[normalizeMessage(m[1])]++
		}
	}
}

func (s *LogStats) analyzeInfo(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.Contains(line, " logged in"):
			s.LoginSuccess++
		case strings.Contains(line, "OTP issued for"):
			s.OTPIssued++
		case strings.Contains(line, "created for user"):
			s.BookingsCreated++
		case strings.Contains(line, "verified") && strings.Contains(line, "Payment "):
			s.PaymentsVerified++
		}

		if m := transitionRegex.FindStringSubmatch(line); m != nil {
			s.Transitions[m[1]]++
		}
		if m := requestRegex.FindStringSubmatch(line); m != nil {
			if status, _ := strconv.Atoi(m[3]); status >= 400 {
				s.FailedRequests++
				s.FailingPaths[m[1]+" "+normalizeMessage(m[2])]++
			}
		}
	}
}

// normalizeMessage replaces ids so messages about different rows group together.
func normalizeMessage(msg string) string {
	return idRegex.ReplaceAllString(strings.TrimSpace(msg), "N")
}

func (s *LogStats) printReport(w io.Writer, day string) {
	fmt.Fprintln(w, "\n=== TurfSphere Log Report ===")
	fmt.Fprintln(w, "Date:", day)

	fmt.Fprintln(w, "\n1. Authentication:")
	fmt.Fprintf(w, "   Successful Logins: %d\n", s.LoginSuccess)
	fmt.Fprintf(w, "   Failed Logins: %d\n", s.LoginFailures)
	fmt.Fprintf(w, "   OTPs Issued: %d\n", s.OTPIssued)

	fmt.Fprintln(w, "\n2. Bookings:")
	fmt.Fprintf(w, "   Created: %d\n", s.BookingsCreated)
	printTop(w, s.Transitions, 10, "transitions")

	fmt.Fprintln(w, "\n3. Payments:")
	fmt.Fprintf(w, "   Verified: %d\n", s.PaymentsVerified)
	fmt.Fprintf(w, "   Signature Mismatches: %d\n", s.PaymentMismatches)

	fmt.Fprintln(w, "\n4. Requests:")
	fmt.Fprintf(w, "   Failed Requests: %d\n", s.FailedRequests)
	printTop(w, s.FailingPaths, 5, "failures")

	fmt.Fprintln(w, "\n5. Errors:")
	fmt.Fprintf(w, "   Total Errors: %d\n", s.TotalErrors)
	printTop(w, s.ErrorPatterns, 5, "occurrences")
}

func printTop(w io.Writer, counts map[string]int, limit int, unit string) {
	type entry struct {
		key   string
		count int
	}

	var entries []entry
	for k, c := range counts {
		entries = append(entries, entry{k, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})

	for i, e := range entries {
		if i >= limit {
			break
		}
		fmt.Fprintf(w, "   %s: %d %s\n", e.key, e.count, unit)
	}
}
