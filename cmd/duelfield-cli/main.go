package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/duelverse/duelfield/internal/broadcast"
	"github.com/duelverse/duelfield/internal/card"
	"github.com/duelverse/duelfield/internal/deck"
	"github.com/duelverse/duelfield/internal/duel"
	"github.com/duelverse/duelfield/internal/field"
	"github.com/duelverse/duelfield/internal/log"
)

func main() {
	cards := flag.String("cards", "cards.yaml", "path to card library YAML file")
	deckPath := flag.String("deck", "deck.yaml", "path to deck list YAML file")
	redisAddr := flag.String("redis", "", "redis address for live broadcasting (optional)")
	duelID := flag.String("duel", "local", "duel id")
	seat := flag.Int("seat", 0, "seat (0 or 1)")
	flag.Parse()

	lib, err := card.LoadLibrary(*cards)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	list, err := deck.Load(*deckPath, lib)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var channel broadcast.Channel
	var opp *broadcast.OpponentView
	if *redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: *redisAddr})
		defer client.Close()
		channel = broadcast.NewRedisChannel(client, *duelID)
		opp = broadcast.NewOpponentView(*seat)
		watch := broadcast.NewRedisChannel(client, *duelID)
		go func() {
			if err := opp.Watch(ctx, watch); err != nil && ctx.Err() == nil {
				logrus.WithError(err).Warn("opponent watch stopped")
			}
		}()
	}

	sess := duel.NewSession(duel.SessionConfig{
		DuelID:  *duelID,
		Seat:    *seat,
		Deck:    list,
		Logger:  log.NewTextLogger(os.Stdout),
		Channel: channel,
	})

	fmt.Printf("duelfield: %s (%d main / %d extra / %d side)\n",
		list.Name, list.MainSize(), list.ExtraSize(), list.SideSize())
	fmt.Println("Type 'help' for commands.")
	repl(sess, opp)
}

func repl(sess *duel.Session, opp *broadcast.OpponentView) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}
		if args[0] == "quit" || args[0] == "exit" {
			return
		}
		if err := dispatch(sess, opp, args); err != nil {
			fmt.Printf("  rejected: %v\n", err)
		}
	}
}

func dispatch(sess *duel.Session, opp *broadcast.OpponentView, args []string) error {
	switch args[0] {
	case "help":
		printHelp()
	case "draw":
		n := 1
		if len(args) > 1 {
			n, _ = strconv.Atoi(args[1])
		}
		for _, c := range sess.Draw(n) {
			fmt.Printf("  drew %s (%s)\n", c.Name(), short(c.ID))
		}
	case "shuffle":
		sess.Shuffle(field.ZoneDeck)
	case "place":
		if len(args) < 3 {
			return fmt.Errorf("usage: place <id> <zone> [set] [def] [tribute-ids...]")
		}
		id, err := resolveID(sess, args[1])
		if err != nil {
			return err
		}
		zone, err := field.ParseZone(args[2])
		if err != nil {
			return err
		}
		faceDown := false
		pos := field.Attack
		var tributes []string
		for _, a := range args[3:] {
			switch a {
			case "set":
				faceDown = true
			case "def":
				pos = field.Defense
			default:
				tid, err := resolveID(sess, a)
				if err != nil {
					return err
				}
				tributes = append(tributes, tid)
			}
		}
		return sess.Place(id, zone, faceDown, pos, tributes)
	case "move":
		if len(args) < 3 {
			return fmt.Errorf("usage: move <id> <zone> [shufflein]")
		}
		id, err := resolveID(sess, args[1])
		if err != nil {
			return err
		}
		zone, err := field.ParseZone(args[2])
		if err != nil {
			return err
		}
		opts := field.MoveOptions{}
		if len(args) > 3 && args[3] == "shufflein" {
			opts.ShuffleIn = true
		}
		return sess.Move(id, zone, opts)
	case "flip":
		if len(args) < 3 {
			return fmt.Errorf("usage: flip <zone> <up|down>")
		}
		zone, err := field.ParseZone(args[1])
		if err != nil {
			return err
		}
		return sess.Flip(zone, args[2] == "down")
	case "pos":
		if len(args) < 2 {
			return fmt.Errorf("usage: pos <zone>")
		}
		zone, err := field.ParseZone(args[1])
		if err != nil {
			return err
		}
		return sess.TogglePosition(zone)
	case "attach":
		if len(args) < 3 {
			return fmt.Errorf("usage: attach <host-zone> <id>")
		}
		zone, err := field.ParseZone(args[1])
		if err != nil {
			return err
		}
		id, err := resolveID(sess, args[2])
		if err != nil {
			return err
		}
		return sess.Attach(zone, id)
	case "detach":
		if len(args) < 3 {
			return fmt.Errorf("usage: detach <host-zone> <index>")
		}
		zone, err := field.ParseZone(args[1])
		if err != nil {
			return err
		}
		idx, err := strconv.Atoi(args[2])
		if err != nil {
			return err
		}
		return sess.Detach(zone, idx)
	case "return":
		if len(args) < 2 {
			return fmt.Errorf("usage: return <id> [bottom]")
		}
		id, err := resolveID(sess, args[1])
		if err != nil {
			return err
		}
		if len(args) > 2 && args[2] == "bottom" {
			return sess.ReturnToDeckBottom(id)
		}
		return sess.ReturnToDeckTop(id)
	case "phase":
		fmt.Printf("  phase: %s\n", sess.AdvancePhase())
	case "turn":
		sess.NextTurn()
	case "reset":
		sess.ReturnAllToDecks()
	case "side":
		i := indexOf(args, "/")
		if i < 0 {
			return fmt.Errorf("usage: side <main-ids...> / <side-ids...>")
		}
		fromMain, err := resolveIDs(sess, args[1:i])
		if err != nil {
			return err
		}
		fromSide, err := resolveIDs(sess, args[i+1:])
		if err != nil {
			return err
		}
		return sess.SideDeckExchange(fromMain, fromSide)
	case "show":
		render(sess)
	case "opp":
		if opp == nil {
			fmt.Println("  no broadcast channel (run with --redis)")
			return nil
		}
		renderOpponent(opp.Latest())
	default:
		return fmt.Errorf("unknown command %q (try 'help')", args[0])
	}
	return nil
}

func printHelp() {
	fmt.Println(`Commands:
  draw [n]                    draw cards
  shuffle                     shuffle the main deck
  place <id> <zone> [set] [def] [tribute-ids...]
  move <id> <zone> [shufflein]
  flip <zone> <up|down>       set orientation in place
  pos <zone>                  toggle attack/defense
  attach <host-zone> <id>     attach xyz material
  detach <host-zone> <index>  detach material to graveyard
  return <id> [bottom]        return a card to its deck
  phase | turn                advance phase / hand turn over
  side <main...> / <side...>  side deck exchange
  reset                       return everything to the decks
  show | opp                  render own / opponent field
  quit

Card ids may be full instance ids, unique prefixes, or h0/h1/... for
hand positions. Zones: monster1-5, extraMonster1-2, spellTrap1-5,
fieldSpell, deck, extraDeck, sideDeck, graveyard, banished, hand.`)
}

// resolveID accepts a hand index (h0, h1, ...), a full instance id,
// or a unique id prefix.
func resolveID(sess *duel.Session, arg string) (string, error) {
	if strings.HasPrefix(arg, "h") {
		if i, err := strconv.Atoi(arg[1:]); err == nil {
			hand := sess.Field.Pile(field.ZoneHand)
			if i < 0 || i >= len(hand) {
				return "", fmt.Errorf("hand index %d out of range", i)
			}
			return hand[i].ID, nil
		}
	}
	match := ""
	for z := field.ZoneID(0); z < field.ZoneID(field.NumZones); z++ {
		var cands []*field.CardInstance
		if z.IsSlot() {
			if c := sess.Field.Slot(z); c != nil {
				cands = append(cands, c)
				cands = append(cands, c.Materials...)
			}
		} else {
			cands = sess.Field.Pile(z)
		}
		for _, c := range cands {
			if strings.HasPrefix(c.ID, arg) {
				if match != "" && match != c.ID {
					return "", fmt.Errorf("ambiguous id prefix %q", arg)
				}
				match = c.ID
			}
		}
	}
	if match == "" {
		return "", fmt.Errorf("no card matches %q", arg)
	}
	return match, nil
}

func resolveIDs(sess *duel.Session, args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for _, a := range args {
		id, err := resolveID(sess, a)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func indexOf(args []string, s string) int {
	for i, a := range args {
		if a == s {
			return i
		}
	}
	return -1
}

func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func render(sess *duel.Session) {
	s := sess.Field
	t := sess.Turn
	fmt.Printf("turn %d  phase %s  player %d\n", t.TurnCount, t.Phase, t.TurnPlayer)
	for _, z := range field.Slots() {
		c := s.Slot(z)
		if c == nil {
			continue
		}
		tag := ""
		if c.FaceDown {
			tag = " [set]"
		}
		if c.Position == field.Defense {
			tag += " [def]"
		}
		if len(c.Materials) > 0 {
			tag += fmt.Sprintf(" [%d mat]", len(c.Materials))
		}
		fmt.Printf("  %-14s %s (%s)%s\n", z, c.Name(), short(c.ID), tag)
	}
	fmt.Printf("  hand %d:\n", s.PileSize(field.ZoneHand))
	for i, c := range s.Pile(field.ZoneHand) {
		fmt.Printf("    h%-2d %s (%s)\n", i, c.Name(), short(c.ID))
	}
	fmt.Printf("  deck %d  extra %d  side %d  grave %d  banished %d\n",
		s.PileSize(field.ZoneDeck), s.PileSize(field.ZoneExtraDeck),
		s.PileSize(field.ZoneSideDeck), s.PileSize(field.ZoneGraveyard),
		s.PileSize(field.ZoneBanished))
}

func renderOpponent(snap *broadcast.Snapshot) {
	if snap == nil {
		fmt.Println("  no opponent snapshot yet")
		return
	}
	fmt.Printf("opponent (seat %d):\n", snap.Seat)
	for _, v := range snap.Slots {
		if !v.Occupied {
			continue
		}
		name := "???"
		if v.Known {
			name = v.Card.Name
		}
		tag := ""
		if v.FaceDown {
			tag = " [set]"
		}
		if v.MaterialCount > 0 {
			tag += fmt.Sprintf(" [%d mat]", v.MaterialCount)
		}
		fmt.Printf("  %-14s %s (%s)%s\n", v.Zone, name, v.Position, tag)
	}
	fmt.Printf("  hand %d  deck %d  extra %d  side %d\n",
		snap.HandCount, snap.DeckCount, snap.ExtraDeckCount, snap.SideDeckCount)
	fmt.Printf("  graveyard %d  banished %d\n", len(snap.Graveyard), len(snap.Banished))
}
