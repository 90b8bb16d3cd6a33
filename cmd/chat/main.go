package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"

	"persona-chat/api"
	"persona-chat/contract"
	"persona-chat/domain"
	"persona-chat/internal"
	"persona-chat/moderation"
	"persona-chat/observability"
	"persona-chat/search"
	"persona-chat/services"
	"persona-chat/store"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Chat terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	maskChar, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}

	logger := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Remote services
	client := api.NewClient(config.APIBaseURL, logger)
	if config.AuthToken != "" {
		client.SetToken(config.AuthToken)
	}

	// 3. Moderation
	var filter services.TextFilter
	if len(config.CensoredWords) > 0 {
		masker, err := moderation.NewMasker(config.CensoredWords, maskChar)
		if err != nil {
			return exitConfig, fmt.Errorf("masker error: %w", err)
		}
		filter = masker
	}

	// 4. Local state & services
	progress := observability.NewProgress(logger)
	chatStore := store.NewStore(logger, client, client, progress)
	conversation := services.NewConversationService(logger, chatStore, client, filter)
	personaService := services.NewPersonaService(logger, chatStore, client)

	index, err := search.NewIndex(logger)
	if err != nil {
		return exitRuntime, err
	}
	defer func() {
		logger.Info("Closing search index...")
		_ = index.Close()
	}()

	// 5. Background reconciliation
	go reconcileLoop(ctx, chatStore, config, logger)

	// 6. REPL
	repl := &repl{
		log:          logger,
		client:       client,
		store:        chatStore,
		conversation: conversation,
		personas:     personaService,
		index:        index,
		progress:     progress,
	}
	if err := repl.loop(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return exitRuntime, err
	}

	logger.Info("Bye")
	return exitOK, nil
}

// reconcileLoop keeps the local state converging on the remote one. Ticks
// overlapping an in-flight pass coalesce inside the store, so a slow backend
// never stacks requests.
func reconcileLoop(ctx context.Context, chatStore *store.Store, config internal.Config, logger *slog.Logger) {
	syncTicker := time.NewTicker(config.SyncInterval)
	defer syncTicker.Stop()
	summaryTicker := time.NewTicker(config.SummaryInterval)
	defer summaryTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Stopping reconcile loop")
			return
		case <-syncTicker.C:
			_ = chatStore.SyncPersonasAndChats(ctx)
		case <-summaryTicker.C:
			_ = chatStore.FetchChatSummaries(ctx)
		}
	}
}

type repl struct {
	log          *slog.Logger
	client       *api.Client
	store        *store.Store
	conversation services.IConversationService
	personas     services.IPersonaService
	index        *search.Index
	progress     *observability.Progress

	current domain.RoomID
}

func (r *repl) loop(ctx context.Context) error {
	color.Cyanln("Persona chat. Type /help for commands.")

	lines := make(chan string)
	scanner := bufio.NewScanner(os.Stdin)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			select {
			case <-ctx.Done():
				return
			case lines <- scanner.Text():
			}
		}
	}()

	r.prompt()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return scanner.Err()
			}
			quit, err := r.dispatch(ctx, strings.TrimSpace(line))
			if err != nil {
				color.Redln(err.Error())
			}
			if quit {
				return nil
			}
			r.prompt()
		}
	}
}

func (r *repl) prompt() {
	if r.current != "" {
		color.Green.Printf("%s> ", r.current)
		return
	}
	color.Green.Print("> ")
}

func (r *repl) dispatch(ctx context.Context, line string) (quit bool, err error) {
	switch {
	case line == "":
		return false, nil
	case line == "/quit", line == "/exit":
		return true, nil
	case line == "/help":
		r.printHelp()
		return false, nil
	case strings.HasPrefix(line, "/login "):
		return false, r.login(ctx, line)
	case line == "/sync":
		return false, r.store.SyncPersonasAndChats(ctx)
	case line == "/rooms":
		r.printRooms()
		return false, nil
	case strings.HasPrefix(line, "/open "):
		return false, r.open(ctx, strings.TrimSpace(strings.TrimPrefix(line, "/open ")))
	case line == "/summaries":
		if err := r.store.FetchChatSummaries(ctx); err != nil {
			return false, err
		}
		r.printSummaries()
		return false, nil
	case strings.HasPrefix(line, "/summary "):
		return false, r.summary(ctx, strings.TrimSpace(strings.TrimPrefix(line, "/summary ")))
	case strings.HasPrefix(line, "/delete "):
		return false, r.delete(ctx, strings.TrimSpace(strings.TrimPrefix(line, "/delete ")))
	case strings.HasPrefix(line, "/create "):
		return false, r.create(ctx, line)
	case strings.HasPrefix(line, "/find"):
		return false, r.find(ctx, line)
	case line == "/stats":
		r.printStats()
		return false, nil
	case strings.HasPrefix(line, "/"):
		return false, fmt.Errorf("unknown command %q, try /help", line)
	default:
		return false, r.send(ctx, line)
	}
}

func (r *repl) printHelp() {
	fmt.Println(`  /login <email> <password>   authenticate against the backend
  /sync                       reload personas and transcripts
  /rooms                      list chat rooms
  /open <personaID>           open a room; following plain text is sent there
  /summaries                  fetch and list the latest summaries
  /summary <personaID>        generate a fresh summary
  /create <disc> <name>       create a persona (disc is D, I, S or C)
  /delete <personaID>         delete a persona and its room
  /find <terms> [--room id] [--lang xx] [--limit n]
  /stats                      process and operation counters
  /quit`)
}

func (r *repl) login(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return fmt.Errorf("usage: /login <email> <password>")
	}
	result, err := r.client.Login(ctx, fields[1], fields[2])
	if err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("login refused: %s", result.Error.String())
	}
	color.Cyanln("Logged in.")
	return nil
}

func (r *repl) open(ctx context.Context, rawID string) error {
	persona, err := r.personaFor(ctx, rawID)
	if err != nil {
		return err
	}
	roomID, err := r.conversation.OpenRoom(ctx, persona)
	if err != nil {
		return err
	}
	r.current = roomID

	room, _ := r.store.Room(roomID)
	color.Cyanln(fmt.Sprintf("-- %s (%s) --", room.PersonaName, room.DISCType))
	for _, message := range room.Messages {
		printMessage(room.PersonaName, message)
	}
	return nil
}

func (r *repl) send(ctx context.Context, text string) error {
	if r.current == "" {
		return fmt.Errorf("no open room, use /open first")
	}
	if err := r.conversation.Send(ctx, r.current, text); err != nil {
		return err
	}
	room, _ := r.store.Room(r.current)
	if len(room.Messages) > 0 {
		printMessage(room.PersonaName, room.Messages[len(room.Messages)-1])
	}
	return nil
}

func (r *repl) summary(ctx context.Context, rawID string) error {
	result, err := r.store.GenerateChatSummary(ctx, domain.PersonaID(rawID))
	if err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("summary refused: %s", result.Error.String())
	}
	color.Cyanln(fmt.Sprintf("Score %d: %s", result.Data.Score, result.Data.SummaryText))
	return nil
}

func (r *repl) delete(ctx context.Context, rawID string) error {
	result, err := r.store.DeletePersona(ctx, domain.PersonaID(rawID))
	if err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("delete refused: %s", result.Error.String())
	}
	if r.current == domain.RoomIDFor(domain.PersonaID(rawID)) {
		r.current = ""
	}
	color.Cyanln("Persona deleted.")
	return nil
}

func (r *repl) create(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return fmt.Errorf("usage: /create <disc> <name>")
	}
	request := contract.CreatePersonaRequest{
		DiscType: strings.ToUpper(fields[1]),
		Name:     strings.Join(fields[2:], " "),
	}
	persona, err := r.personas.Create(ctx, request)
	if err != nil {
		return err
	}
	color.Cyanln(fmt.Sprintf("Created %s (%s), room %s", persona.Name, persona.DISCType, domain.RoomIDFor(persona.ID)))
	return nil
}

func (r *repl) find(ctx context.Context, line string) error {
	query := search.ParseQuery(line)
	if query.Terms == "" {
		return fmt.Errorf("usage: /find <terms> [--room id] [--lang xx] [--limit n]")
	}
	if err := r.index.Rebuild(r.store.Rooms()); err != nil {
		return err
	}
	hits, err := r.index.Search(ctx, query)
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		color.Cyanln("No matches.")
		return nil
	}
	for i, hit := range hits {
		fmt.Println(search.FormatHit(i, hit))
	}
	return nil
}

func (r *repl) printRooms() {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Room", "Persona", "DISC", "Messages", "Summary"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	for _, room := range r.store.Rooms() {
		summary := "-"
		if room.Summary != nil {
			summary = strconv.Itoa(room.Summary.Score)
		}
		table.Append([]string{
			string(room.ID),
			room.PersonaName,
			string(room.DISCType),
			strconv.Itoa(len(room.Messages)),
			summary,
		})
	}
	table.Render()
}

func (r *repl) printSummaries() {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Room", "Score", "Summary", "At"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	for _, room := range r.store.Rooms() {
		if room.Summary == nil {
			continue
		}
		at := time.UnixMilli(room.Summary.Timestamp).Format("2006-01-02 15:04")
		table.Append([]string{
			string(room.ID),
			strconv.Itoa(room.Summary.Score),
			room.Summary.SummaryText,
			at,
		})
	}
	table.Render()
}

func (r *repl) printStats() {
	stats := observability.ReadProcessStats(r.log)
	fmt.Printf("cpu %.1f%%  ram %.1f%%  alloc %dMB  gc %d  goroutines %d\n",
		stats.CPUPercent, stats.RAMPercent, stats.AllocMemMb, stats.NumGC, stats.Goroutines)
	for op, inFlight := range r.progress.Snapshot() {
		fmt.Printf("in flight: %s=%d\n", op, inFlight)
	}
	fmt.Printf("indexed messages: %d\n", r.index.Documents())
}

// personaFor resolves a persona from local state first, hitting the
// directory only for ids the last sync has not seen.
func (r *repl) personaFor(ctx context.Context, rawID string) (domain.Persona, error) {
	personaID := domain.PersonaID(rawID)
	if room, ok := r.store.Room(domain.RoomIDFor(personaID)); ok {
		return domain.Persona{
			ID:       room.PersonaID,
			Name:     room.PersonaName,
			DISCType: room.DISCType,
		}, nil
	}

	numeric, ok := personaID.Numeric()
	if !ok {
		return domain.Persona{ID: personaID}, nil
	}
	result, err := r.client.GetPersonaByID(ctx, numeric)
	if err != nil {
		return domain.Persona{}, err
	}
	if !result.Success {
		return domain.Persona{}, fmt.Errorf("unknown persona %s: %s", rawID, result.Error.String())
	}
	return domain.Persona{
		ID:              personaID,
		Name:            result.Data.Name,
		DISCType:        domain.ParseDISCType(result.Data.DiscType),
		Age:             result.Data.Age,
		Gender:          result.Data.Gender,
		ProfileImageURL: result.Data.ProfileImageURL,
	}, nil
}

func printMessage(personaName string, message domain.Message) {
	if message.IsUser {
		color.Yellow.Printf("you: %s\n", message.Text)
		return
	}
	name := personaName
	if message.Emotion != "" {
		name = fmt.Sprintf("%s (%s)", personaName, message.Emotion)
	}
	color.White.Printf("%s: %s\n", name, message.Text)
}
