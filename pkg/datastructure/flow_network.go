package datastructure

import (
	"errors"
	"fmt"
)

type Index uint32

var (
	ErrInvalidCapacity = errors.New("pipe capacity must not be negative")
	ErrUnknownNode     = errors.New("unknown node name")
	ErrDuplicatePipe   = errors.New("duplicate pipe between node pair")
)

// PipeRecord is one row of a pipe edge list before it is loaded into a FlowNetwork.
// Capacity is in million liters per day (MLD).
type PipeRecord struct {
	From     string
	To       string
	Capacity float64
}

func NewPipeRecord(from, to string, capacity float64) PipeRecord {
	return PipeRecord{
		From:     from,
		To:       to,
		Capacity: capacity,
	}
}

// PipeEdge is one directed arc of the residual network. A physical pipe keeps its
// original capacity, the paired reverse arc created by PrepareResidual has capacity 0.
// Flow on a reverse arc goes negative so that residual capacity = capacity - flow
// works uniformly for both directions.
type PipeEdge struct {
	id       int
	u        Index
	v        Index
	capacity float64
	flow     float64
}

func NewPipeEdge(id int, u, v Index, capacity float64) *PipeEdge {
	return &PipeEdge{
		id:       id,
		u:        u,
		v:        v,
		capacity: capacity,
		flow:     0,
	}
}

func (e *PipeEdge) GetID() int {
	return e.id
}

func (e *PipeEdge) GetCapacity() float64 {
	return e.capacity
}

func (e *PipeEdge) GetFlow() float64 {
	return e.flow
}

func (e *PipeEdge) GetFrom() Index {
	return e.u
}

func (e *PipeEdge) GetTo() Index {
	return e.v
}

func (e *PipeEdge) AddFlow(f float64) {
	e.flow += f
}

func (e *PipeEdge) GetResidualCapacity() float64 {
	return e.capacity - e.flow
}

type pipeKey struct {
	u Index
	v Index
}

// FlowNetwork is a directed pipe network addressed by node name. Junctions are
// created implicitly by AddPipe. The scratch arrays (level, last, visited, prev)
// belong to whichever solver currently runs on the network.
type FlowNetwork struct {
	labels        []string
	labelIndex    map[string]Index
	adjacencyList [][]int
	edgeList      []*PipeEdge
	pipeIndex     map[pipeKey]int
	reverse       []int
	synthetic     []bool

	level   []int
	last    []int
	visited []bool
	prev    []*PipeEdge
}

func NewFlowNetwork() *FlowNetwork {
	return &FlowNetwork{
		labels:        make([]string, 0),
		labelIndex:    make(map[string]Index),
		adjacencyList: make([][]int, 0),
		edgeList:      make([]*PipeEdge, 0),
		pipeIndex:     make(map[pipeKey]int),
		reverse:       make([]int, 0),
		synthetic:     make([]bool, 0),
		level:         make([]int, 0),
		last:          make([]int, 0),
		visited:       make([]bool, 0),
		prev:          make([]*PipeEdge, 0),
	}
}

// NewFlowNetworkFromRecords builds and prepares a network from a pipe edge list.
func NewFlowNetworkFromRecords(records []PipeRecord) (*FlowNetwork, error) {
	g := NewFlowNetwork()
	for _, record := range records {
		if err := g.AddPipe(record.From, record.To, record.Capacity); err != nil {
			return nil, err
		}
	}
	g.PrepareResidual()
	return g, nil
}

func (g *FlowNetwork) NumberOfVertices() int {
	return len(g.labels)
}

func (g *FlowNetwork) NumberOfEdges() int {
	return len(g.edgeList)
}

func (g *FlowNetwork) IndexOf(label string) (Index, bool) {
	u, ok := g.labelIndex[label]
	return u, ok
}

func (g *FlowNetwork) LabelOf(u Index) string {
	return g.labels[u]
}

func (g *FlowNetwork) getOrCreateVertex(label string) Index {
	if u, ok := g.labelIndex[label]; ok {
		return u
	}
	u := Index(len(g.labels))
	g.labels = append(g.labels, label)
	g.labelIndex[label] = u
	g.adjacencyList = append(g.adjacencyList, []int{})
	g.level = append(g.level, 0)
	g.last = append(g.last, 0)
	g.visited = append(g.visited, false)
	g.prev = append(g.prev, nil)
	return u
}

func (g *FlowNetwork) appendEdge(u, v Index, capacity float64, syntheticReverse bool) *PipeEdge {
	edge := NewPipeEdge(len(g.edgeList), u, v, capacity)
	g.edgeList = append(g.edgeList, edge)
	g.adjacencyList[u] = append(g.adjacencyList[u], edge.id)
	g.pipeIndex[pipeKey{u: u, v: v}] = edge.id
	g.reverse = append(g.reverse, -1)
	g.synthetic = append(g.synthetic, syntheticReverse)
	return edge
}

// AddPipe inserts a physical pipe from one named node to another, creating the
// nodes on first mention. A negative capacity is rejected before anything is
// mutated. Self loops are ignored. Adding a pipe where PrepareResidual already
// created a synthetic reverse arc upgrades that arc in place, so antiparallel
// pipes stay paired with each other.
func (g *FlowNetwork) AddPipe(from, to string, capacity float64) error {
	if capacity < 0 {
		return fmt.Errorf("%w: %s -> %s (%g)", ErrInvalidCapacity, from, to, capacity)
	}
	if from == to {
		return nil
	}

	u := g.getOrCreateVertex(from)
	v := g.getOrCreateVertex(to)

	if eId, ok := g.pipeIndex[pipeKey{u: u, v: v}]; ok {
		if !g.synthetic[eId] {
			return fmt.Errorf("%w: %s -> %s", ErrDuplicatePipe, from, to)
		}
		g.edgeList[eId].capacity = capacity
		g.synthetic[eId] = false
		return nil
	}

	g.appendEdge(u, v, capacity, false)
	return nil
}

// PrepareResidual pairs every arc with a reverse arc. An existing physical pipe
// in the opposite direction becomes the pair, otherwise a capacity-0 synthetic
// arc is appended. Calling it again on a prepared network changes nothing, and
// flows already on the edges are kept as they are.
func (g *FlowNetwork) PrepareResidual() {
	numPhysical := len(g.edgeList)
	for eId := 0; eId < numPhysical; eId++ {
		if g.reverse[eId] != -1 {
			continue
		}
		edge := g.edgeList[eId]
		if revId, ok := g.pipeIndex[pipeKey{u: edge.v, v: edge.u}]; ok && g.reverse[revId] == -1 {
			g.reverse[eId] = revId
			g.reverse[revId] = eId
			continue
		}
		reverseEdge := g.appendEdge(edge.v, edge.u, 0, true)
		g.reverse[eId] = reverseEdge.id
		g.reverse[reverseEdge.id] = eId
	}
}

// PushFlow sends amount along edge and withdraws it from the paired reverse arc,
// keeping flow(u,v) == -flow(v,u). The network must be prepared.
func (g *FlowNetwork) PushFlow(edge *PipeEdge, amount float64) {
	edge.AddFlow(amount)
	g.edgeList[g.reverse[edge.id]].AddFlow(-amount)
}

func (g *FlowNetwork) GetReversedEdge(edge *PipeEdge) *PipeEdge {
	return g.edgeList[g.reverse[edge.id]]
}

func (g *FlowNetwork) IsSyntheticEdge(edge *PipeEdge) bool {
	return g.synthetic[edge.id]
}

func (g *FlowNetwork) GetVertexEdgesSize(u Index) int {
	return len(g.adjacencyList[u])
}

func (g *FlowNetwork) GetEdgeOfVertex(u Index, idx int) *PipeEdge {
	edgeIndex := g.adjacencyList[u][idx]
	return g.edgeList[edgeIndex]
}

func (g *FlowNetwork) ForEachVertexEdges(u Index, handle func(e *PipeEdge)) {
	for _, edgeIdx := range g.adjacencyList[u] {
		handle(g.edgeList[edgeIdx])
	}
}

func (g *FlowNetwork) ForEdgeList(handle func(e *PipeEdge, eId int)) {
	for eId, e := range g.edgeList {
		handle(e, eId)
	}
}

func (g *FlowNetwork) GetEdgeById(eId int) *PipeEdge {
	return g.edgeList[eId]
}

func (g *FlowNetwork) GetVertexLevel(u Index) int {
	return g.level[u]
}

func (g *FlowNetwork) SetVertexLevel(u Index, level int) {
	g.level[u] = level
}

func (g *FlowNetwork) GetLastEdgeIndex(u Index) int {
	return g.last[u]
}

func (g *FlowNetwork) SetLastEdgeIndex(u Index, idx int) {
	g.last[u] = idx
}

func (g *FlowNetwork) IncrementLastEdgeIndex(u Index) {
	g.last[u]++
}

func (g *FlowNetwork) SetVisited(u Index, visited bool) {
	g.visited[u] = visited
}

func (g *FlowNetwork) IsVisited(u Index) bool {
	return g.visited[u]
}

func (g *FlowNetwork) SetPrev(u Index, edge *PipeEdge) {
	g.prev[u] = edge
}

func (g *FlowNetwork) GetPrev(u Index) *PipeEdge {
	return g.prev[u]
}

func (g *FlowNetwork) ResetPrev() {
	for i := range g.prev {
		g.prev[i] = nil
	}
}

func (g *FlowNetwork) ResetFlows() {
	for _, edge := range g.edgeList {
		edge.flow = 0
	}
}

// PositiveInflow sums the positive flow arriving at u over all arcs.
func (g *FlowNetwork) PositiveInflow(u Index) float64 {
	total := 0.0
	for _, edge := range g.edgeList {
		if edge.v == u && edge.flow > 0 {
			total += edge.flow
		}
	}
	return total
}

// PositiveOutflow sums the positive flow leaving u over all arcs.
func (g *FlowNetwork) PositiveOutflow(u Index) float64 {
	total := 0.0
	for _, edgeIdx := range g.adjacencyList[u] {
		if edge := g.edgeList[edgeIdx]; edge.flow > 0 {
			total += edge.flow
		}
	}
	return total
}

// Clone deep copies the network including flows, so a solver can run on the copy
// while the caller keeps the original assignment.
func (ng *FlowNetwork) Clone() *FlowNetwork {
	newNg := NewFlowNetwork()

	newNg.labels = make([]string, len(ng.labels))
	copy(newNg.labels, ng.labels)
	for label, u := range ng.labelIndex {
		newNg.labelIndex[label] = u
	}

	newNg.adjacencyList = make([][]int, len(ng.adjacencyList))
	for i, adj := range ng.adjacencyList {
		newAdj := make([]int, len(adj))
		copy(newAdj, adj)
		newNg.adjacencyList[i] = newAdj
	}

	newNg.edgeList = make([]*PipeEdge, 0, len(ng.edgeList))
	for _, e := range ng.edgeList {
		newEdge := NewPipeEdge(e.id, e.u, e.v, e.capacity)
		newEdge.flow = e.flow
		newNg.edgeList = append(newNg.edgeList, newEdge)
	}
	for key, eId := range ng.pipeIndex {
		newNg.pipeIndex[key] = eId
	}

	newNg.reverse = make([]int, len(ng.reverse))
	copy(newNg.reverse, ng.reverse)
	newNg.synthetic = make([]bool, len(ng.synthetic))
	copy(newNg.synthetic, ng.synthetic)

	newNg.level = make([]int, len(ng.level))
	copy(newNg.level, ng.level)
	newNg.last = make([]int, len(ng.last))
	copy(newNg.last, ng.last)
	newNg.visited = make([]bool, len(ng.visited))
	copy(newNg.visited, ng.visited)
	newNg.prev = make([]*PipeEdge, len(ng.prev))

	return newNg
}
