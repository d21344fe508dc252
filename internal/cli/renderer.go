package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"cluedo-sim/internal/ai"
	"cluedo-sim/internal/card"
	"cluedo-sim/internal/events"
	"cluedo-sim/internal/player"
	"cluedo-sim/internal/sim"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// C holds pre-configured color objects for printing to the console.
var C = struct {
	Yes, No, Maybe, Info, Warn, Header, Prompt *color.Color
}{
	Yes:    color.New(color.FgGreen),
	No:     color.New(color.FgRed),
	Maybe:  color.New(color.FgYellow),
	Info:   color.New(color.FgCyan),
	Warn:   color.New(color.FgHiYellow),
	Header: color.New(color.FgWhite, color.Bold),
	Prompt: color.New(color.FgHiWhite),
}

// SuspectColors maps the classic suspect names to their token colors.
var SuspectColors = map[string]*color.Color{
	"Miss Scarlett":   color.New(color.FgRed),
	"Colonel Mustard": color.New(color.FgYellow),
	"Mrs. White":      color.New(color.FgWhite),
	"Mr. Green":       color.New(color.FgGreen),
	"Mrs. Peacock":    color.New(color.FgBlue),
	"Professor Plum":  color.New(color.FgMagenta),
}

// ColorizeCard returns a card name as a colored string if it's a suspect.
func ColorizeCard(name string) string {
	if c, ok := SuspectColors[name]; ok {
		return c.Sprint(name)
	}
	return name
}

func describeCards(deck *card.Deck, cards []card.Card) string {
	parts := make([]string, 0, len(cards))
	for _, c := range cards {
		parts = append(parts, ColorizeCard(deck.Name(c)))
	}
	return strings.Join(parts, ", ")
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

// SimulationRenderer implements events.Listener and traces a single game.
type SimulationRenderer struct {
	out  io.Writer
	deck *card.Deck
}

func NewSimulationRenderer(out io.Writer, deck *card.Deck) *SimulationRenderer {
	return &SimulationRenderer{out: out, deck: deck}
}

// HandleEvent is the central dispatcher for rendering events.
func (r *SimulationRenderer) HandleEvent(e events.Event) {
	switch event := e.(type) {
	case events.GameReadyEvent:
		C.Header.Fprintf(r.out, "--- Game %s: Initial State ---\n", event.GameID)
		r.renderSeats(event)
	case events.TurnStartEvent:
		C.Header.Fprintf(r.out, "\n--- Turn %d: Seat %d ---\n", event.TurnNumber, event.Seat)
	case events.SuggestionMadeEvent:
		C.Info.Fprintf(r.out, "Seat %d suggests: %s\n", event.Seat, describeCards(r.deck, event.Guess.Cards()))
	case events.DisprovalEvent:
		C.Info.Fprintf(r.out, "-> Seat %d shows %s to Seat %d.\n",
			event.Disprover, ColorizeCard(r.deck.Name(event.RevealedCard)), event.Suggester)
	case events.NoDisprovalEvent:
		C.Info.Fprintln(r.out, "-> No player could show a card.")
	case events.GameOverEvent:
		r.renderGameResult(event)
	}
}

func (r *SimulationRenderer) renderSeats(event events.GameReadyEvent) {
	t := newTable(r.out)
	t.AppendHeader(table.Row{"Seat", "Strategy", "Hand"})
	for _, s := range event.Seats {
		name := s.Strategy
		if s.Position == event.TestedSeat {
			name += " (tested)"
		}
		t.AppendRow(table.Row{s.Position, name, describeCards(r.deck, s.Hand)})
	}
	t.Render()
}

func (r *SimulationRenderer) renderGameResult(event events.GameOverEvent) {
	C.Header.Fprintln(r.out, "\n--- GAME OVER ---")
	if event.Accusation != nil {
		C.Info.Fprintf(r.out, "Seat %d ACCUSED with: %s\n", event.Winner, describeCards(r.deck, event.Accusation.Cards()))
		if event.IsCorrect {
			C.Yes.Fprintf(r.out, "The accusation is CORRECT! Seat %d wins after %d turns!\n", event.Winner, event.Turns)
		} else {
			C.No.Fprintf(r.out, "The accusation is INCORRECT! The game is aborted.\n")
		}
	} else {
		C.Warn.Fprintf(r.out, "Game ended without an accusation after %d turns.\n", event.Turns)
	}
	C.Info.Fprintf(r.out, "The correct solution was: %s\n", describeCards(r.deck, event.Solution.Cards()))
}

// RenderAgentNotes prints what a finished agent believed, if its strategy
// keeps notes worth showing.
func RenderAgentNotes(w io.Writer, agent player.Agent) {
	switch a := agent.(type) {
	case *ai.DetectivePlayer:
		fmt.Fprintln(w)
		C.Header.Fprintf(w, "--- Notes for Seat %d ---\n", a.Position())
		RenderNotes(w, a)
	case *ai.EliminationPlayer:
		fmt.Fprintln(w)
		RenderCandidates(w, a)
	}
}

// RenderNotes displays the detective's knowledge grid in a formatted table.
func RenderNotes(w io.Writer, brain *ai.DetectivePlayer) {
	deck := brain.Deck()
	t := newTable(w)
	t.SetTitle(fmt.Sprintf("Seat %d's Detective Notes", brain.Position()))
	header := table.Row{"ID", "Card", "Type"}
	for seat := 0; seat < brain.Players(); seat++ {
		header = append(header, fmt.Sprintf("Seat %d", seat))
	}
	header = append(header, "Solution")
	t.AppendHeader(header)

	for id, c := range deck.Cards() {
		if id > 0 && c.Index == 0 {
			t.AppendSeparator()
		}
		row := table.Row{id + 1, ColorizeCard(deck.Name(c)), c.Category.String()}
		for loc := 0; loc <= brain.Players(); loc++ {
			row = append(row, statusToSymbol(brain.Status(c, loc)))
		}
		t.AppendRow(row)
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Title.Align = text.AlignCenter
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignRight}})
	t.Render()
}

func statusToSymbol(status ai.CardStatus) string {
	switch status {
	case ai.StatusYes:
		return C.Yes.Sprint("✔")
	case ai.StatusNo:
		return C.No.Sprint("✖")
	default:
		return C.Maybe.Sprint("?")
	}
}

// RenderCandidates lists the cards an elimination player had not ruled out.
func RenderCandidates(w io.Writer, p *ai.EliminationPlayer) {
	deck := p.Deck()
	suspects, weapons, rooms := p.Candidates()
	var cols [3][]string
	for _, s := range suspects {
		cols[card.CategorySuspect] = append(cols[card.CategorySuspect], ColorizeCard(deck.Name(card.SuspectCard(s))))
	}
	for _, wp := range weapons {
		cols[card.CategoryWeapon] = append(cols[card.CategoryWeapon], deck.Name(card.WeaponCard(wp)))
	}
	for _, r := range rooms {
		cols[card.CategoryRoom] = append(cols[card.CategoryRoom], deck.Name(card.RoomCard(r)))
	}

	t := newTable(w)
	t.SetTitle(fmt.Sprintf("Seat %d's Remaining Candidates", p.Position()))
	t.AppendHeader(table.Row{"Suspects", "Weapons", "Rooms"})
	rows := max(len(cols[0]), len(cols[1]), len(cols[2]))
	for i := 0; i < rows; i++ {
		row := make(table.Row, 3)
		for cat := range cols {
			if i < len(cols[cat]) {
				row[cat] = cols[cat][i]
			}
		}
		t.AppendRow(row)
	}
	t.Render()
}

// RenderSummary prints the aggregate of a simulation batch.
func RenderSummary(w io.Writer, s sim.Summary) {
	t := newTable(w)
	t.SetTitle("Simulation Summary")
	t.AppendRows([]table.Row{
		{"Strategy", s.Strategy},
		{"Players", s.Players},
		{"Games", s.Games},
		{"Tested wins", s.TestedWins},
		{"Win rate", fmt.Sprintf("%.1f%%", 100*s.WinRate())},
		{"Turns (min / mean / max)", fmt.Sprintf("%d / %.1f / %d", s.MinTurns, s.MeanTurns(), s.MaxTurns)},
		{"Elapsed", s.Elapsed.Round(time.Millisecond).String()},
	})
	t.Render()
}

// RenderStrategies lists the strategies that can be named on the command line.
func RenderStrategies(w io.Writer, strategies []player.Strategy, opponents []string) {
	pool := make(map[string]bool)
	for _, name := range opponents {
		pool[strings.ToLower(strings.TrimSpace(name))] = true
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"Strategy", "Opponent pool"})
	for _, s := range strategies {
		mark := ""
		if pool[s.Name] {
			mark = C.Yes.Sprint("✔")
		}
		t.AppendRow(table.Row{s.Name, mark})
	}
	t.Render()
}
