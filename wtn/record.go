package wtn

import (
	"fmt"
	"strconv"
	"strings"

	"einstein/game"
)

// Ply is one recorded turn: the die rolled and the move played.
type Ply struct {
	Die  int
	Move game.Move
}

// Record is a full game record: optional comment lines, the two opening
// arrangements (Red first), and the move sequence.
type Record struct {
	Comments  []string
	RedOrder  game.Arrangement
	BlueOrder game.Arrangement
	Moves     []Ply
}

// EncodeMove renders one move line: "<die>:<pieceId>;(<from>,<to>)".
func EncodeMove(die int, m game.Move) (string, error) {
	if die < 1 || die > 6 {
		return "", fmt.Errorf("die %d out of range", die)
	}
	if m.PieceID < 1 || m.PieceID > 6 {
		return "", fmt.Errorf("piece id %d out of range", m.PieceID)
	}
	from, err := FormatSquare(m.From)
	if err != nil {
		return "", err
	}
	to, err := FormatSquare(m.To)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d:%d;(%s,%s)", die, m.PieceID, from, to), nil
}

// DecodeMove parses a move line produced by EncodeMove.
func DecodeMove(line string) (int, game.Move, error) {
	head, tail, ok := strings.Cut(strings.TrimSpace(line), ":")
	if !ok {
		return 0, game.Move{}, fmt.Errorf("invalid move line %q", line)
	}
	die, err := strconv.Atoi(head)
	if err != nil || die < 1 || die > 6 {
		return 0, game.Move{}, fmt.Errorf("invalid die in move line %q", line)
	}

	idPart, movePart, ok := strings.Cut(tail, ";")
	if !ok {
		return 0, game.Move{}, fmt.Errorf("invalid move line %q", line)
	}
	pieceID, err := strconv.Atoi(idPart)
	if err != nil || pieceID < 1 || pieceID > 6 {
		return 0, game.Move{}, fmt.Errorf("invalid piece id in move line %q", line)
	}

	movePart = strings.TrimSpace(movePart)
	if !strings.HasPrefix(movePart, "(") || !strings.HasSuffix(movePart, ")") {
		return 0, game.Move{}, fmt.Errorf("invalid move payload %q", movePart)
	}
	fromSq, toSq, ok := strings.Cut(movePart[1:len(movePart)-1], ",")
	if !ok {
		return 0, game.Move{}, fmt.Errorf("invalid move payload %q", movePart)
	}
	from, err := ParseSquare(strings.TrimSpace(fromSq))
	if err != nil {
		return 0, game.Move{}, err
	}
	to, err := ParseSquare(strings.TrimSpace(toSq))
	if err != nil {
		return 0, game.Move{}, err
	}
	return die, game.Move{PieceID: pieceID, From: from, To: to}, nil
}

// AddMove validates and appends one played turn. Rejecting out-of-range
// plies here keeps every record serializable and replayable; a ply that
// cannot be encoded never enters the record.
func (r *Record) AddMove(die int, m game.Move) error {
	if _, err := EncodeMove(die, m); err != nil {
		return err
	}
	r.Moves = append(r.Moves, Ply{Die: die, Move: m})
	return nil
}

// String serializes the record: comments, Red layout line, Blue layout line,
// then one move per line.
func (r *Record) String() string {
	var b strings.Builder
	for _, comment := range r.Comments {
		b.WriteString(comment)
		b.WriteByte('\n')
	}
	b.WriteString(r.RedOrder.String())
	b.WriteByte('\n')
	b.WriteString(r.BlueOrder.String())
	b.WriteByte('\n')
	for _, ply := range r.Moves {
		// AddMove and Parse admit only encodable plies.
		line, _ := EncodeMove(ply.Die, ply.Move)
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Parse reads a record: comment lines start with '#', the first two
// non-comment lines are the Red and Blue arrangements, every following line
// is a move.
func Parse(text string) (*Record, error) {
	rec := &Record{}
	layoutLines := 0
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			rec.Comments = append(rec.Comments, line)
			continue
		}
		if layoutLines < 2 {
			arr, err := game.ParseArrangement(line)
			if err != nil {
				return nil, fmt.Errorf("layout line %q: %w", line, err)
			}
			if layoutLines == 0 {
				rec.RedOrder = arr
			} else {
				rec.BlueOrder = arr
			}
			layoutLines++
			continue
		}
		die, move, err := DecodeMove(line)
		if err != nil {
			return nil, err
		}
		rec.Moves = append(rec.Moves, Ply{Die: die, Move: move})
	}
	if layoutLines < 2 {
		return nil, fmt.Errorf("record must contain two layout lines, got %d", layoutLines)
	}
	return rec, nil
}
