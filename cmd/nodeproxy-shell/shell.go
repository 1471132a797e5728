package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nodeproxy/nodeproxy-go/pkg/model"
	"github.com/nodeproxy/nodeproxy-go/pkg/proxy"
)

// errQuit ends the command loop.
var errQuit = errors.New("quit")

// spaceSource yields the address space of the live connection.
type spaceSource interface {
	Space() (*proxy.AddressSpace, error)
}

// shell interprets commands against the proxy of the current entity.
type shell struct {
	source  spaceSource
	status  func() string
	metrics prometheus.Gatherer
	root    model.EntityRef
	timeout time.Duration

	mu   sync.Mutex
	path []proxy.Proxy
}

func newShell(source spaceSource, root model.EntityRef, timeout time.Duration) *shell {
	return &shell{source: source, root: root, timeout: timeout}
}

// reset drops the navigation path. The next command starts at the root of
// the current address space.
func (s *shell) reset() {
	s.mu.Lock()
	s.path = nil
	s.mu.Unlock()
}

// Run reads commands from rl until quit, EOF or ctx ends.
func (s *shell) Run(ctx context.Context, rl *readline.Instance) {
	s.printHelp(rl.Stdout())
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		rl.SetPrompt(s.prompt())
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(rl.Stdout(), "Exiting...")
			return
		}

		if err := s.Exec(ctx, line, rl.Stdout()); err != nil {
			if errors.Is(err, errQuit) {
				fmt.Fprintln(rl.Stdout(), "Exiting...")
				return
			}
			fmt.Fprintf(rl.Stdout(), "Error: %v\n", err)
		}
	}
}

func (s *shell) prompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.path) == 0 {
		return "nodeproxy> "
	}
	names := make([]string, len(s.path))
	for i, p := range s.path {
		names[i] = p.ProxyNode().BrowseName().Name
	}
	return "/" + strings.Join(names[1:], "/") + "> "
}

// Exec runs one command line and writes its output to w.
func (s *shell) Exec(ctx context.Context, line string, w io.Writer) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp(w)
		return nil
	case "quit", "exit", "q":
		return errQuit
	case "status":
		return s.cmdStatus(w)
	case "metrics":
		return s.cmdMetrics(w)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	switch cmd {
	case "open", "o":
		return s.cmdOpen(ctx, args, w)
	case "ls", "l":
		return s.cmdList(ctx, w)
	case "cd":
		return s.cmdCd(ctx, args, w)
	case "pwd":
		return s.cmdPwd(ctx, w)
	case "get", "g":
		return s.cmdGet(ctx, args, w)
	case "read", "r":
		return s.cmdRead(ctx, args, w)
	case "write", "w":
		return s.cmdWrite(ctx, args, w, true)
	case "set":
		return s.cmdWrite(ctx, args, w, false)
	case "refresh":
		return s.cmdRefresh(ctx, w)
	}
	return fmt.Errorf("unknown command: %s (type 'help' for commands)", cmd)
}

func (s *shell) printHelp(w io.Writer) {
	fmt.Fprint(w, `
Node Proxy Shell Commands:
  Navigation:
    open <ref>           - Open the entity with the given ref (nsu=...;i=N or i=N)
    cd <name|..|/>       - Browse into a child, go up, or back to the root
    pwd                  - Show the current entity
    ls                   - List attributes and members of the current entity

  Attributes:
    get <attr>           - Show the cached value
    read <attr>          - Read from the server and update the cache
    write <attr> <value> - Write to the server and update the cache
    set <attr> <value>   - Update the cache only
    refresh              - Read every declared attribute

  Other:
    status               - Show connection state
    metrics              - Show cache and remote call metrics
    help                 - Show this help
    quit                 - Exit

`)
}

// current returns the proxy at the end of the path, opening the root
// entity on first use.
func (s *shell) current(ctx context.Context) (*proxy.Node, error) {
	s.mu.Lock()
	if n := len(s.path); n > 0 {
		p := s.path[n-1]
		s.mu.Unlock()
		return p.ProxyNode(), nil
	}
	s.mu.Unlock()

	p, err := s.open(ctx, s.root)
	if err != nil {
		return nil, err
	}
	return p.ProxyNode(), nil
}

func (s *shell) open(ctx context.Context, ref model.EntityRef) (proxy.Proxy, error) {
	space, err := s.source.Space()
	if err != nil {
		return nil, err
	}
	p, err := space.Node(ctx, ref)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.path = []proxy.Proxy{p}
	s.mu.Unlock()
	return p, nil
}

func (s *shell) cmdOpen(ctx context.Context, args []string, w io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: open <ref>")
	}
	ref, err := model.ParseRef(args[0])
	if err != nil {
		return err
	}
	p, err := s.open(ctx, ref)
	if err != nil {
		return err
	}
	describe(w, p.ProxyNode())
	return nil
}

func (s *shell) cmdCd(ctx context.Context, args []string, w io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: cd <name|..|/>")
	}
	switch args[0] {
	case "/":
		_, err := s.open(ctx, s.root)
		return err
	case "..":
		s.mu.Lock()
		defer s.mu.Unlock()
		if len(s.path) > 1 {
			s.path = s.path[:len(s.path)-1]
		}
		return nil
	}

	n, err := s.current(ctx)
	if err != nil {
		return err
	}
	child, err := n.Browse(ctx, selectorFor(n, args[0]))
	if err != nil {
		return err
	}
	if child == nil {
		return fmt.Errorf("%s has no child %q", n.BrowseName().Name, args[0])
	}

	s.mu.Lock()
	s.path = append(s.path, child)
	s.mu.Unlock()
	describe(w, child.ProxyNode())
	return nil
}

func (s *shell) cmdPwd(ctx context.Context, w io.Writer) error {
	n, err := s.current(ctx)
	if err != nil {
		return err
	}
	describe(w, n)
	return nil
}

func (s *shell) cmdList(ctx context.Context, w io.Writer) error {
	n, err := s.current(ctx)
	if err != nil {
		return err
	}
	describe(w, n)

	typ := n.TypeDefinition()
	if typ == nil {
		return nil
	}

	fmt.Fprintln(w, "Attributes:")
	for _, key := range typ.AllAttributes() {
		v, ok := n.Get(key)
		value := "-"
		if ok {
			value = formatValue(v)
		}
		fmt.Fprintf(w, "  %-26s %-8s %-4s %s\n", key.Name, key.DataType, key.Access, value)
	}

	members := typ.AllMembers()
	if len(members) == 0 {
		return nil
	}
	fmt.Fprintln(w, "Members:")
	for _, m := range members {
		mark := " "
		if child, ok := n.CachedChild(m.Selector); ok {
			mark = "*"
			if child == nil {
				mark = "!"
			}
		}
		optional := ""
		if m.Optional {
			optional = " (optional)"
		}
		fmt.Fprintf(w, " %s %s%s\n", mark, m.Selector.Name, optional)
	}
	return nil
}

func (s *shell) cmdGet(ctx context.Context, args []string, w io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: get <attr>")
	}
	n, err := s.current(ctx)
	if err != nil {
		return err
	}
	key := resolveKey(n, args[0])
	v, ok := n.Get(key)
	if !ok {
		fmt.Fprintf(w, "%s: %v\n", key.Name, proxy.ErrNoCachedValue)
		return nil
	}
	fmt.Fprintf(w, "%s = %s\n", key.Name, formatValue(v))
	return nil
}

func (s *shell) cmdRead(ctx context.Context, args []string, w io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: read <attr>")
	}
	n, err := s.current(ctx)
	if err != nil {
		return err
	}
	key := resolveKey(n, args[0])
	v, err := n.Read(ctx, key)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s = %s\n", key.Name, formatValue(v))
	return nil
}

func (s *shell) cmdWrite(ctx context.Context, args []string, w io.Writer, remote bool) error {
	if len(args) < 2 {
		return errors.New("usage: write|set <attr> <value>")
	}
	n, err := s.current(ctx)
	if err != nil {
		return err
	}
	key := resolveKey(n, args[0])
	raw := strings.Join(args[1:], " ")

	sample, ok := n.Get(key)
	if !ok && remote && key.DataType == model.DataTypeAny {
		if sample, err = n.Read(ctx, key); err != nil {
			return err
		}
	}
	v, err := parseValue(raw, key, sample)
	if err != nil {
		return err
	}

	if !remote {
		if err := n.Set(key, v); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s = %s (cached)\n", key.Name, formatValue(v))
		return nil
	}
	if err := n.Write(ctx, key, v); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s = %s\n", key.Name, formatValue(v))
	return nil
}

func (s *shell) cmdRefresh(ctx context.Context, w io.Writer) error {
	n, err := s.current(ctx)
	if err != nil {
		return err
	}
	space, err := s.source.Space()
	if err != nil {
		return err
	}
	err = space.Refresh(ctx, n)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	fmt.Fprintf(w, "Refreshed, %d attribute(s) cached\n", len(n.Attributes().Snapshot()))
	if err != nil {
		// Optional attributes the server lacks fail individually.
		fmt.Fprintf(w, "Some reads failed: %v\n", err)
	}
	return nil
}

func (s *shell) cmdStatus(w io.Writer) error {
	if s.status == nil {
		return errors.New("status unavailable")
	}
	fmt.Fprintln(w, s.status())
	return nil
}

func (s *shell) cmdMetrics(w io.Writer) error {
	if s.metrics == nil {
		return errors.New("metrics disabled")
	}
	families, err := s.metrics.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "connection" {
					continue
				}
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			name := mf.GetName()
			if len(labels) > 0 {
				sort.Strings(labels)
				name += "{" + strings.Join(labels, ",") + "}"
			}
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(w, "  %-60s %g\n", name, m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				fmt.Fprintf(w, "  %-60s count=%d sum=%.6fs\n", name, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
	return nil
}

// describe prints the identity of n.
func describe(w io.Writer, n *proxy.Node) {
	fmt.Fprintf(w, "%s  %s  %s  [%s]\n", n.Ref(), n.NodeClass(), n.BrowseName().Name, n.TypeDefinition())
}

// selectorFor names a child of n. A declared member wins; otherwise the
// name is taken to be in the namespace of n's browse name.
func selectorFor(n *proxy.Node, name string) model.ChildSelector {
	if typ := n.TypeDefinition(); typ != nil {
		for _, m := range typ.AllMembers() {
			if strings.EqualFold(m.Selector.Name, name) {
				return m.Selector
			}
		}
	}
	ns := n.BrowseName().Namespace
	if ns == "" {
		ns = model.NamespaceStandard
	}
	return model.Selector(ns, name)
}

// resolveKey maps an attribute name to a key. Declared attributes win, then
// intrinsic attribute names, then a property in the standard namespace.
func resolveKey(n *proxy.Node, name string) model.AttributeKey {
	if typ := n.TypeDefinition(); typ != nil {
		attrs := typ.AllAttributes()
		if i := slices.IndexFunc(attrs, func(k model.AttributeKey) bool {
			return strings.EqualFold(k.Name, name)
		}); i >= 0 {
			return attrs[i]
		}
	}
	for id := model.AttrNodeID; id <= model.AttrAccessLevelEx; id++ {
		if strings.EqualFold(id.String(), name) {
			return model.Intrinsic(id, model.DataTypeAny, model.ValueRankAny)
		}
	}
	return model.AttributeKey{
		NamespaceURI: model.NamespaceStandard,
		Name:         name,
		ID:           model.AttrValue,
		DataType:     model.DataTypeAny,
		ValueRank:    model.ValueRankAny,
		Access:       model.AccessReadWrite,
	}
}
