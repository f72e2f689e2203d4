package benchmarks

import (
	"context"
	"testing"

	"github.com/zoobzio/shroud"
	"github.com/zoobzio/shroud/json"
	shroudtest "github.com/zoobzio/shroud/testing"
)

func BenchmarkMask_Customer(b *testing.B) {
	c := shroudtest.NewCustomer()
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = shroud.Mask(ctx, c)
	}
}

func BenchmarkMask_Ring(b *testing.B) {
	head := shroudtest.Ring("李小龙", "张三丰", "王五", "赵六", "钱七")
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = shroud.Mask(ctx, head)
	}
}

func BenchmarkClone_Customer(b *testing.B) {
	c := shroudtest.NewCustomer()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = shroud.Clone(c)
	}
}

func BenchmarkProcessor_Send_JSON(b *testing.B) {
	proc, err := shroud.NewProcessor[shroudtest.Customer](json.New())
	if err != nil {
		b.Fatal(err)
	}
	c := shroudtest.NewCustomer()
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = proc.Send(ctx, &c)
	}
}

func BenchmarkMobilePhone(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = shroud.MobilePhone("13512346810")
	}
}
