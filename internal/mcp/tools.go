package mcp

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/duelverse/duelfield/internal/field"
)

// activeSession is the singleton sandbox session (one per stdio process).
var activeSession *SandboxSession

// cardsFile and deckFile are set by main before the server starts.
var (
	cardsFile string
	deckFile  string
)

// SetCardsFile sets the path to the card library YAML file.
func SetCardsFile(path string) {
	cardsFile = path
}

// SetDeckFile sets the path to the deck list YAML file.
func SetDeckFile(path string) {
	deckFile = path
}

// RegisterTools adds all field tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startSandboxTool(), handleStartSandbox)
	s.AddTool(getFieldTool(), handleGetField)
	s.AddTool(getOpponentViewTool(), handleGetOpponentView)
	s.AddTool(drawTool(), handleDraw)
	s.AddTool(shuffleDeckTool(), handleShuffleDeck)
	s.AddTool(placeCardTool(), handlePlaceCard)
	s.AddTool(moveCardTool(), handleMoveCard)
	s.AddTool(flipCardTool(), handleFlipCard)
	s.AddTool(togglePositionTool(), handleTogglePosition)
	s.AddTool(attachMaterialTool(), handleAttachMaterial)
	s.AddTool(detachMaterialTool(), handleDetachMaterial)
	s.AddTool(returnToDeckTool(), handleReturnToDeck)
	s.AddTool(nextPhaseTool(), handleNextPhase)
	s.AddTool(nextTurnTool(), handleNextTurn)
	s.AddTool(sideDeckSwapTool(), handleSideDeckSwap)
	s.AddTool(resetFieldTool(), handleResetField)
}

func respondJSON(resp *ToolResponse) string {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return `{"error":"failed to marshal response"}`
	}
	return string(data)
}

// --- Tool definitions ---

func startSandboxTool() mcp.Tool {
	return mcp.NewTool("start_sandbox",
		mcp.WithDescription("Start a fresh sandbox field from the configured deck list. "+
			"Replaces any sandbox already running. Returns the initial field view."),
	)
}

func getFieldTool() mcp.Tool {
	return mcp.NewTool("get_field",
		mcp.WithDescription("Get the full owner-side field view: slots, hand, piles and turn state. Read-only."),
	)
}

func getOpponentViewTool() mcp.Tool {
	return mcp.NewTool("get_opponent_view",
		mcp.WithDescription("Get the redacted snapshot the opponent would receive for the current field: "+
			"face-down cards anonymized, hand and deck as counts only. Read-only."),
	)
}

func drawTool() mcp.Tool {
	return mcp.NewTool("draw",
		mcp.WithDescription("Draw cards from the deck into the hand. Drawing past an empty deck draws what is available."),
		mcp.WithNumber("count", mcp.Description("Number of cards to draw (default 1)")),
	)
}

func shuffleDeckTool() mcp.Tool {
	return mcp.NewTool("shuffle_deck",
		mcp.WithDescription("Shuffle the main deck."),
	)
}

func placeCardTool() mcp.Tool {
	return mcp.NewTool("place_card",
		mcp.WithDescription("Place a card into a zone, enforcing summon rules for monster slots. "+
			"A face-up hand placement is a normal summon; face-down is a normal set; "+
			"high-level monsters need tribute instance ids."),
		mcp.WithString("instance_id", mcp.Required(), mcp.Description("Instance id of the card to place")),
		mcp.WithString("zone", mcp.Required(), mcp.Description("Target zone (e.g. 'monster1', 'spellTrap2', 'fieldSpell', 'graveyard')")),
		mcp.WithBoolean("face_down", mcp.Description("Place the card face-down (default false)")),
		mcp.WithString("position", mcp.Description("'attack' or 'defense' (default attack)")),
		mcp.WithString("tributes", mcp.Description("Space-separated instance ids of monsters to tribute")),
	)
}

func moveCardTool() mcp.Tool {
	return mcp.NewTool("move_card",
		mcp.WithDescription("Move a card between zones without summon bookkeeping. "+
			"Materials of a host leaving the field go to the graveyard."),
		mcp.WithString("instance_id", mcp.Required(), mcp.Description("Instance id of the card to move")),
		mcp.WithString("zone", mcp.Required(), mcp.Description("Destination zone")),
		mcp.WithBoolean("shuffle_in", mcp.Description("Insert at a random pile index instead of the top")),
	)
}

func flipCardTool() mcp.Tool {
	return mcp.NewTool("flip_card",
		mcp.WithDescription("Set the orientation of a slot occupant without moving it."),
		mcp.WithString("zone", mcp.Required(), mcp.Description("Slot zone of the card")),
		mcp.WithBoolean("face_down", mcp.Required(), mcp.Description("true for face-down, false for face-up")),
	)
}

func togglePositionTool() mcp.Tool {
	return mcp.NewTool("toggle_position",
		mcp.WithDescription("Toggle the occupant of a monster slot between attack and defense. Rejected for link monsters."),
		mcp.WithString("zone", mcp.Required(), mcp.Description("Slot zone of the monster")),
	)
}

func attachMaterialTool() mcp.Tool {
	return mcp.NewTool("attach_material",
		mcp.WithDescription("Attach a card as overlay material to the xyz monster in a slot."),
		mcp.WithString("host_zone", mcp.Required(), mcp.Description("Slot zone of the xyz host")),
		mcp.WithString("instance_id", mcp.Required(), mcp.Description("Instance id of the material")),
	)
}

func detachMaterialTool() mcp.Tool {
	return mcp.NewTool("detach_material",
		mcp.WithDescription("Detach one overlay material by index and send it to the graveyard. A stale index is a no-op."),
		mcp.WithString("host_zone", mcp.Required(), mcp.Description("Slot zone of the xyz host")),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based material index")),
	)
}

func returnToDeckTool() mcp.Tool {
	return mcp.NewTool("return_to_deck",
		mcp.WithDescription("Return a card to the top or bottom of its home deck (extra-deck monsters go to the extra deck)."),
		mcp.WithString("instance_id", mcp.Required(), mcp.Description("Instance id of the card")),
		mcp.WithString("where", mcp.Description("'top' (default) or 'bottom'")),
	)
}

func nextPhaseTool() mcp.Tool {
	return mcp.NewTool("next_phase",
		mcp.WithDescription("Advance to the next phase; past the end phase the turn hands over."),
	)
}

func nextTurnTool() mcp.Tool {
	return mcp.NewTool("next_turn",
		mcp.WithDescription("Hand the turn over immediately, resetting the incoming player's summon budget."),
	)
}

func sideDeckSwapTool() mcp.Tool {
	return mcp.NewTool("side_deck_swap",
		mcp.WithDescription("Atomically swap equal selections between the main deck and the side deck, then reshuffle."),
		mcp.WithString("from_main", mcp.Required(), mcp.Description("Space-separated instance ids from the main deck")),
		mcp.WithString("from_side", mcp.Required(), mcp.Description("Space-separated instance ids from the side deck")),
	)
}

func resetFieldTool() mcp.Tool {
	return mcp.NewTool("reset_field",
		mcp.WithDescription("Return every card on the field, hand, graveyard and banished pile to its home deck and reshuffle."),
	)
}

// --- Tool handlers ---

func requireSession() (*SandboxSession, *mcp.CallToolResult) {
	if activeSession == nil {
		return nil, mcp.NewToolResultError("No sandbox is running. Use start_sandbox first.")
	}
	return activeSession, nil
}

func parseZoneArg(request mcp.CallToolRequest, key string) (field.ZoneID, *mcp.CallToolResult) {
	name := request.GetString(key, "")
	z, err := field.ParseZone(name)
	if err != nil {
		return 0, mcp.NewToolResultErrorf("Invalid zone %q.", name)
	}
	return z, nil
}

func handleStartSandbox(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := NewSandboxSession(cardsFile, deckFile)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start sandbox: %v", err), nil
	}
	activeSession = sess
	return mcp.NewToolResultText(respondJSON(sess.respond())), nil
}

func handleGetField(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := requireSession()
	if errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText(respondJSON(sess.respond())), nil
}

func handleGetOpponentView(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := requireSession()
	if errResult != nil {
		return errResult, nil
	}
	snap := sess.session.Snapshot()
	resp := &ToolResponse{Events: sess.drainEvents(), OpponentView: &snap}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleDraw(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := requireSession()
	if errResult != nil {
		return errResult, nil
	}
	count := request.GetInt("count", 1)
	if count < 1 {
		return mcp.NewToolResultError("count must be >= 1"), nil
	}
	drawn := sess.session.Draw(count)
	resp := sess.respond()
	for _, c := range drawn {
		resp.Drawn = append(resp.Drawn, c.Name())
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleShuffleDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := requireSession()
	if errResult != nil {
		return errResult, nil
	}
	sess.session.Shuffle(field.ZoneDeck)
	return mcp.NewToolResultText(respondJSON(sess.respond())), nil
}

func handlePlaceCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := requireSession()
	if errResult != nil {
		return errResult, nil
	}
	zone, errResult := parseZoneArg(request, "zone")
	if errResult != nil {
		return errResult, nil
	}

	id := request.GetString("instance_id", "")
	faceDown := request.GetBool("face_down", false)
	pos := field.Attack
	if request.GetString("position", "attack") == "defense" {
		pos = field.Defense
	}
	var tributes []string
	if raw := strings.TrimSpace(request.GetString("tributes", "")); raw != "" {
		tributes = strings.Fields(raw)
	}

	if err := sess.session.Place(id, zone, faceDown, pos, tributes); err != nil {
		return mcp.NewToolResultErrorf("Placement rejected: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.respond())), nil
}

func handleMoveCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := requireSession()
	if errResult != nil {
		return errResult, nil
	}
	zone, errResult := parseZoneArg(request, "zone")
	if errResult != nil {
		return errResult, nil
	}

	id := request.GetString("instance_id", "")
	opts := field.MoveOptions{ShuffleIn: request.GetBool("shuffle_in", false)}
	if err := sess.session.Move(id, zone, opts); err != nil {
		return mcp.NewToolResultErrorf("Move rejected: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.respond())), nil
}

func handleFlipCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := requireSession()
	if errResult != nil {
		return errResult, nil
	}
	zone, errResult := parseZoneArg(request, "zone")
	if errResult != nil {
		return errResult, nil
	}
	if err := sess.session.Flip(zone, request.GetBool("face_down", false)); err != nil {
		return mcp.NewToolResultErrorf("Flip rejected: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.respond())), nil
}

func handleTogglePosition(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := requireSession()
	if errResult != nil {
		return errResult, nil
	}
	zone, errResult := parseZoneArg(request, "zone")
	if errResult != nil {
		return errResult, nil
	}
	if err := sess.session.TogglePosition(zone); err != nil {
		return mcp.NewToolResultErrorf("Position change rejected: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.respond())), nil
}

func handleAttachMaterial(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := requireSession()
	if errResult != nil {
		return errResult, nil
	}
	hostZone, errResult := parseZoneArg(request, "host_zone")
	if errResult != nil {
		return errResult, nil
	}
	if err := sess.session.Attach(hostZone, request.GetString("instance_id", "")); err != nil {
		return mcp.NewToolResultErrorf("Attach rejected: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.respond())), nil
}

func handleDetachMaterial(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := requireSession()
	if errResult != nil {
		return errResult, nil
	}
	hostZone, errResult := parseZoneArg(request, "host_zone")
	if errResult != nil {
		return errResult, nil
	}
	if err := sess.session.Detach(hostZone, request.GetInt("index", -1)); err != nil {
		return mcp.NewToolResultErrorf("Detach rejected: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.respond())), nil
}

func handleReturnToDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := requireSession()
	if errResult != nil {
		return errResult, nil
	}
	id := request.GetString("instance_id", "")
	var err error
	if request.GetString("where", "top") == "bottom" {
		err = sess.session.ReturnToDeckBottom(id)
	} else {
		err = sess.session.ReturnToDeckTop(id)
	}
	if err != nil {
		return mcp.NewToolResultErrorf("Return rejected: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.respond())), nil
}

func handleNextPhase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := requireSession()
	if errResult != nil {
		return errResult, nil
	}
	sess.session.AdvancePhase()
	return mcp.NewToolResultText(respondJSON(sess.respond())), nil
}

func handleNextTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := requireSession()
	if errResult != nil {
		return errResult, nil
	}
	sess.session.NextTurn()
	return mcp.NewToolResultText(respondJSON(sess.respond())), nil
}

func handleSideDeckSwap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := requireSession()
	if errResult != nil {
		return errResult, nil
	}
	fromMain := strings.Fields(request.GetString("from_main", ""))
	fromSide := strings.Fields(request.GetString("from_side", ""))
	if err := sess.session.SideDeckExchange(fromMain, fromSide); err != nil {
		return mcp.NewToolResultErrorf("Side deck swap rejected: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.respond())), nil
}

func handleResetField(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := requireSession()
	if errResult != nil {
		return errResult, nil
	}
	sess.session.ReturnAllToDecks()
	return mcp.NewToolResultText(respondJSON(sess.respond())), nil
}
