package targets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andrescamacho/gridstock/internal/domain/inventory"
)

const (
	keywordList       = "list"
	keywordProduction = "production"
)

// Config is the result of parsing an operator's target block.
type Config struct {
	Targets map[inventory.MaterialKey]inventory.Amount
	Errors  []*LineError

	lists     map[string]*inventory.TransferList
	listOrder []string
}

func newConfig() *Config {
	return &Config{
		Targets: make(map[inventory.MaterialKey]inventory.Amount),
		lists:   make(map[string]*inventory.TransferList),
	}
}

// Target returns the declared target for key, zero when undeclared.
func (c *Config) Target(key inventory.MaterialKey) inventory.Amount {
	return c.Targets[key]
}

// List returns a named transfer list.
func (c *Config) List(name string) (*inventory.TransferList, bool) {
	l, ok := c.lists[name]
	return l, ok
}

// ListNames returns list names in declaration order.
func (c *Config) ListNames() []string {
	out := make([]string, len(c.listOrder))
	copy(out, c.listOrder)
	return out
}

// HasErrors reports whether any line failed to parse.
func (c *Config) HasErrors() bool {
	return len(c.Errors) > 0
}

// parser holds the order-sensitive context while walking lines.
type parser struct {
	cfg         *Config
	category    string
	activeList  *inventory.TransferList
	ignoringDup bool
}

// Parse reads a target block. It never fails as a whole: malformed lines are
// collected in Config.Errors and the remaining lines are still applied.
//
//	Ingot            <- sets the current item type
//	Iron 500         <- adds 500 to the Iron ingot target
//	list Station     <- following entries go to transfer list "Station"
//	Iron 10
//	production       <- back to targets
func Parse(text string) *Config {
	p := &parser{cfg: newConfig()}

	for i, raw := range strings.Split(text, "\n") {
		p.line(i+1, raw)
	}

	return p.cfg
}

func (p *parser) line(number int, raw string) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}

	tokens := strings.Fields(line)
	switch len(tokens) {
	case 1:
		p.single(number, line, tokens[0])
	case 2:
		if strings.EqualFold(tokens[0], keywordList) {
			p.openList(number, line, tokens[1])
			return
		}
		p.entry(number, line, tokens[0], tokens[1])
	default:
		p.fail(number, line, "expected '<type>', 'list <name>', 'production' or '<subtype> <amount>'")
	}
}

func (p *parser) single(number int, line, token string) {
	if strings.EqualFold(token, keywordList) {
		p.fail(number, line, "list needs a name")
		return
	}
	if strings.EqualFold(token, keywordProduction) {
		p.activeList = nil
		p.ignoringDup = false
		return
	}
	p.category = CategoryFor(token)
}

func (p *parser) openList(number int, line, name string) {
	if _, exists := p.cfg.lists[name]; exists {
		p.fail(number, line, "duplicate list "+strconv.Quote(name)+"; later definition ignored")
		p.activeList = nil
		p.ignoringDup = true
		return
	}
	l := inventory.NewTransferList(name)
	p.cfg.lists[name] = l
	p.cfg.listOrder = append(p.cfg.listOrder, name)
	p.activeList = l
	p.ignoringDup = false
}

func (p *parser) entry(number int, line, subtype, quantity string) {
	n, err := strconv.ParseInt(quantity, 10, 64)
	if err != nil {
		p.fail(number, line, "amount "+strconv.Quote(quantity)+" is not an integer")
		return
	}
	if n < 0 {
		p.fail(number, line, "amount must not be negative")
		return
	}
	if p.category == "" {
		p.fail(number, line, "no item type set before this entry")
		return
	}
	if p.ignoringDup {
		return
	}

	amount, ok := inventory.CheckedItems(n)
	if !ok {
		p.fail(number, line, fmt.Sprintf("amount must not exceed %d", inventory.MaxItems))
		return
	}

	key := inventory.MaterialKey{Category: p.category, Subtype: subtype}
	current := p.cfg.Targets[key]
	if p.activeList != nil {
		current = p.activeList.Amount(key)
	}
	if _, ok := current.CheckedAdd(amount); !ok {
		p.fail(number, line, fmt.Sprintf("total for %s must not exceed %d", subtype, inventory.MaxItems))
		return
	}

	if p.activeList != nil {
		p.activeList.Add(key, amount)
		return
	}
	p.cfg.Targets[key] += amount
}

func (p *parser) fail(number int, line, message string) {
	p.cfg.Errors = append(p.cfg.Errors, &LineError{Line: number, Text: line, Message: message})
}

// CategoryFor maps a type line to a host category. Known words are matched
// case-insensitively anywhere in the token; anything else is used verbatim.
func CategoryFor(token string) string {
	lower := strings.ToLower(token)
	switch {
	case strings.Contains(lower, "ingot"):
		return inventory.CategoryIngot
	case strings.Contains(lower, "component"):
		return inventory.CategoryComponent
	case strings.Contains(lower, "ammo"), strings.Contains(lower, "ammunition"):
		return inventory.CategoryAmmunition
	default:
		return token
	}
}
