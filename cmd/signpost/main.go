// Command signpost prints the FAIR Signposting found in HTTP Link headers,
// an HTML document or an RFC 9264 linkset. Input comes from a file argument
// or stdin, so headers captured with e.g. curl -sI can be piped straight in.
// Nothing is fetched.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"signposting"
	"signposting/linkheader"
	"signposting/log"
)

// Exit codes, in the manner of sysexits: 1 for unparseable input,
// 2 for input that could not be read at all.
const (
	exitParse = 1
	exitIO    = 2
)

var base string
var contentType string

func main() {
	rootCmd := &cobra.Command{
		Use:   "signpost [file]",
		Short: "Discover FAIR Signposting in HTTP Link headers",
		Long: "Reads raw Link header values, one per line, from a file or stdin and\n" +
			"prints the FAIR Signposting they declare. A leading \"Link:\" header name\n" +
			"on a line is tolerated, so curl -sI output can be grepped in directly.",
		Args: cobra.MaximumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			lines := readHeaderLines(openInput(args))
			result, err := signposting.FindSignposting(lines, base)
			if err != nil {
				log.Error().Err(err).Msg("Could not parse Link headers")
				os.Exit(exitParse)
			}
			report(result)
		},
	}
	rootCmd.PersistentFlags().StringVar(&base, "base", "",
		"base URL for resolving relative link targets")

	htmlCmd := &cobra.Command{
		Use:   "html [file]",
		Short: "Discover FAIR Signposting in an HTML document's <link> elements",
		Args:  cobra.MaximumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			result, err := signposting.FindSignpostingHTML(openInput(args), base)
			if err != nil {
				log.Error().Err(err).Msg("Could not parse HTML")
				os.Exit(exitParse)
			}
			report(result)
		},
	}

	linksetCmd := &cobra.Command{
		Use:   "linkset [file]",
		Short: "Discover FAIR Signposting in an RFC 9264 linkset",
		Args:  cobra.MaximumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			body, err := io.ReadAll(openInput(args))
			if err != nil {
				log.Error().Err(err).Msg("Could not read linkset")
				os.Exit(exitIO)
			}
			result, err := signposting.FindSignpostingLinkset(body, contentType, base)
			if err != nil {
				log.Error().Err(err).Msg("Could not parse linkset")
				os.Exit(exitParse)
			}
			report(result)
		},
	}
	linksetCmd.Flags().StringVar(&contentType, "content-type", "application/linkset+json",
		"linkset serialization: application/linkset+json or application/linkset")

	rootCmd.AddCommand(htmlCmd, linksetCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitParse)
	}
}

func openInput(args []string) io.Reader {
	if len(args) == 0 {
		return os.Stdin
	}
	file, err := os.Open(args[0])
	if err != nil {
		log.Error().Err(err).Str("file", args[0]).Msg("Could not open input")
		os.Exit(exitIO)
	}
	return file
}

func readHeaderLines(r io.Reader) []string {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if len(line) >= 5 && strings.EqualFold(line[:5], "link:") {
			line = strings.TrimSpace(line[5:])
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("Could not read headers")
		os.Exit(exitIO)
	}
	return lines
}

func report(s *signposting.Signposting) {
	if s.IsEmpty() {
		fmt.Println("No signposting found")
		return
	}
	if s.CiteAs != nil {
		fmt.Println("CiteAs:", s.CiteAs.Target)
	}
	if len(s.Type) > 0 {
		printMultiline("Type", targets(s.Type))
	}
	if s.Collection != nil {
		fmt.Println("Collection:", s.Collection.Target)
	}
	if s.License != nil {
		fmt.Println("License:", s.License.Target)
	}
	if len(s.Author) > 0 {
		printMultiline("Author", targets(s.Author))
	}
	if len(s.DescribedBy) > 0 {
		printMultiline("DescribedBy", targetsAndTypes(s.DescribedBy))
	}
	if len(s.Item) > 0 {
		printMultiline("Item", targetsAndTypes(s.Item))
	}
	if len(s.Linkset) > 0 {
		printMultiline("Linkset", targetsAndTypes(s.Linkset))
	}
}

func printMultiline(header string, lines []string) {
	indent := "\n" + strings.Repeat(" ", len(header)+2)
	fmt.Printf("%s: %s\n", header, strings.Join(lines, indent))
}

func targets(links []linkheader.Link) []string {
	result := make([]string, 0, len(links))
	for _, link := range links {
		result = append(result, link.Target)
	}
	return result
}

func targetsAndTypes(links []linkheader.Link) []string {
	result := make([]string, 0, len(links))
	for _, link := range links {
		if mediaType, ok := link.Attr("type"); ok {
			result = append(result, fmt.Sprintf("%s %s", link.Target, mediaType))
		} else {
			result = append(result, link.Target)
		}
	}
	return result
}
