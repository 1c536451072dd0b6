// Command quoter prices availability request files from the command line:
// each argument is an XML document, quoted concurrently with a bounded number
// of workers. With no arguments it prices a built-in sample request.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"avail_quote/internal/adapters/observability"
	"avail_quote/internal/app"
	"avail_quote/internal/refdata"
	"avail_quote/internal/shared"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	table := refdata.Load()
	rates := app.NewRateService(table, nil, nil, 0)
	proc := app.NewProcessor(table, rates, app.NewIDGenerator(), nil)

	files := os.Args[1:]
	if len(files) == 0 {
		out, err := proc.Process(ctx, []byte(sampleRequest()))
		if err != nil {
			log.Fatal().Err(err).Msg("sample request rejected")
		}
		printJSON(out)
		return
	}

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, f := range files {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			defer sem.Release(1)

			xml, err := os.ReadFile(path)
			if err != nil {
				log.Warn().Str("file", path).Err(err).Msg("read failed")
				return
			}
			out, err := proc.Process(ctx, xml)
			if err != nil {
				log.Warn().Str("file", path).Err(err).Msg("request rejected")
				return
			}
			log.Info().Str("file", path).Msg("quoted")
			printJSON(out)
		}(f)
	}

	wg.Wait()
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("marshal response failed")
		return
	}
	fmt.Println(string(b))
}

// sampleRequest returns a request dated relative to today so it always passes
// the date-window checks.
func sampleRequest() string {
	start := time.Now().AddDate(0, 0, 3).Format("02/01/2006")
	end := time.Now().AddDate(0, 0, 7).Format("02/01/2006")
	return fmt.Sprintf(`
<AvailRQ>
    <source>
        <languageCode>en</languageCode>
    </source>
    <optionsQuota>20</optionsQuota>
    <Configuration>
        <Parameters>
            <Parameter password="XXXXXXXXXX" username="YYYYYYYYY" CompanyID="123456"/>
        </Parameters>
    </Configuration>
    <StartDate>%s</StartDate>
    <EndDate>%s</EndDate>
    <Currency>USD</Currency>
    <Nationality>US</Nationality>
    <Paxes>
        <Pax age="4"/>
        <Pax age="30"/>
    </Paxes>
    <Paxes>
        <Pax age="2"/>
        <Pax age="1"/>
        <Pax age="29"/>
    </Paxes>
</AvailRQ>`, start, end)
}
