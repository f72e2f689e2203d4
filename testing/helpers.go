// Package testing provides fixtures and helpers for testing shroud.
package testing

import (
	"reflect"
	"testing"

	"github.com/zoobzio/shroud"
)

// Customer carries one field for every builtin mask type.
type Customer struct {
	ID      string   `json:"id" xml:"id" yaml:"id" msgpack:"id" bson:"id"`
	Name    string   `json:"name" xml:"name" yaml:"name" msgpack:"name" bson:"name" mask:"chinese_name"`
	IDCard  string   `json:"id_card" xml:"id_card" yaml:"id_card" msgpack:"id_card" bson:"id_card" mask:"id_card"`
	Phone   string   `json:"phone" xml:"phone" yaml:"phone" msgpack:"phone" bson:"phone" mask:"fixed_phone"`
	Mobile  string   `json:"mobile" xml:"mobile" yaml:"mobile" msgpack:"mobile" bson:"mobile" mask:"mobile_phone"`
	Address string   `json:"address" xml:"address" yaml:"address" msgpack:"address" bson:"address" mask:"address"`
	Email   string   `json:"email" xml:"email" yaml:"email" msgpack:"email" bson:"email" mask:"email"`
	Card    string   `json:"card" xml:"card" yaml:"card" msgpack:"card" bson:"card" mask:"bank_card"`
	Balance string   `json:"balance" xml:"balance" yaml:"balance" msgpack:"balance" bson:"balance" mask:"secret_num"`
	Aliases []string `json:"aliases" xml:"alias" yaml:"aliases" msgpack:"aliases" bson:"aliases" mask:"chinese_name"`
}

// NewCustomer returns a fully populated Customer.
func NewCustomer() Customer {
	return Customer{
		ID:      "c-1001",
		Name:    "李小龙",
		IDCard:  "110101199003074518",
		Phone:   "01086551122",
		Mobile:  "13512346810",
		Address: "北京市海淀区中关村大街27号",
		Email:   "daniel@126.com",
		Card:    "6217000012340567",
		Balance: "10000.05",
		Aliases: []string{"张三丰", "", "Bruce"},
	}
}

// Expected returns c as the builtin maskers render it.
func Expected(c Customer) Customer {
	out := c
	out.Name = shroud.ChineseName(c.Name)
	out.IDCard = shroud.IDCard(c.IDCard)
	out.Phone = shroud.FixedPhone(c.Phone)
	out.Mobile = shroud.MobilePhone(c.Mobile)
	out.Address = shroud.Address(c.Address, shroud.AddressSensitiveSize)
	out.Email = shroud.Email(c.Email)
	out.Card = shroud.BankCard(c.Card)
	out.Balance = shroud.SecretNum(c.Balance)
	out.Aliases = nil
	if c.Aliases != nil {
		out.Aliases = make([]string, len(c.Aliases))
		for i, a := range c.Aliases {
			out.Aliases[i] = shroud.ChineseName(a)
		}
	}
	return out
}

// Contact masks its email only when Public is set.
type Contact struct {
	Name   string `json:"name" mask:"chinese_name"`
	Email  string `json:"email" mask:"email" mask.when:"public"`
	Public bool   `json:"public"`
}

// MaskEffective implements shroud.Effective.
func (c *Contact) MaskEffective(name string) bool {
	return name == "public" && c.Public
}

// Node is a linked structure that may contain cycles.
type Node struct {
	Name  string  `json:"name" mask:"chinese_name"`
	Next  *Node   `json:"-"`
	Peers []*Node `json:"-"`
}

// Ring links one node per name into a cycle and returns the first node.
// Every node also lists all nodes as peers.
func Ring(names ...string) *Node {
	if len(names) == 0 {
		return nil
	}
	nodes := make([]*Node, len(names))
	for i, n := range names {
		nodes[i] = &Node{Name: n}
	}
	for i, n := range nodes {
		n.Next = nodes[(i+1)%len(nodes)]
		n.Peers = nodes
	}
	return nodes[0]
}

// Walk returns every node reachable along Next from n, stopping at the
// first repeat.
func Walk(n *Node) []*Node {
	var out []*Node
	seen := make(map[*Node]bool)
	for n != nil && !seen[n] {
		seen[n] = true
		out = append(out, n)
		n = n.Next
	}
	return out
}

// Directory holds customers by value behind maps and interfaces.
type Directory struct {
	ByID    map[string]Customer `json:"by_id"`
	Notes   map[string]string   `json:"notes" mask:"mobile_phone"`
	Primary any                 `json:"primary"`
}

// Snapshot deep copies v with shroud.Clone and fails tb
// if the copy does not compare equal.
func Snapshot[T any](tb testing.TB, v T) T {
	tb.Helper()
	c, err := shroud.Clone(v)
	if err != nil {
		tb.Fatalf("Clone() error: %v", err)
	}
	if !reflect.DeepEqual(c, v) {
		tb.Fatalf("Clone() = %+v, want %+v", c, v)
	}
	return c
}

// AssertUnchanged fails tb if got differs from the earlier snapshot.
func AssertUnchanged[T any](tb testing.TB, snapshot, got T) {
	tb.Helper()
	if !reflect.DeepEqual(snapshot, got) {
		tb.Errorf("value was modified:\n got  %+v\n want %+v", got, snapshot)
	}
}
