package attack

import (
	"context"
	"testing"
	"threatScoringBackend/internal/core/domain"
	"time"
)

func TestBruteForce_Start(t *testing.T) {
	tests := []struct {
		name      string
		config    domain.AttackConfig
		wantCount int
		wantFirst string
		wantLast  string
	}{
		{
			name: "Single character digits",
			config: domain.AttackConfig{
				Charset:   domain.CharsetNameDigits,
				MaxLength: 1,
			},
			wantCount: 10,
			wantFirst: "0",
			wantLast:  "9",
		},
		{
			name: "Two character digits",
			config: domain.AttackConfig{
				Charset:   domain.CharsetNameDigits,
				MaxLength: 2,
			},
			wantCount: 110,
			wantFirst: "0",
			wantLast:  "99",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBruteForce()
			b.SetConfig(tt.config)

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			passwords, errors := b.Start(ctx)

			var results []string
			done := make(chan struct{})
			go func() {
				defer close(done)
				for password := range passwords {
					results = append(results, password)
				}
			}()

			select {
			case err := <-errors:
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				<-done
			case <-done:
			case <-ctx.Done():
				t.Fatal("Test timed out")
			}

			if len(results) != tt.wantCount {
				t.Fatalf("Got %d passwords, want %d", len(results), tt.wantCount)
			}
			if results[0] != tt.wantFirst {
				t.Errorf("First password = %s, want %s", results[0], tt.wantFirst)
			}
			if results[len(results)-1] != tt.wantLast {
				t.Errorf("Last password = %s, want %s", results[len(results)-1], tt.wantLast)
			}
		})
	}
}

func TestBruteForce_Ordering(t *testing.T) {
	b := NewBruteForce()
	b.SetConfig(domain.AttackConfig{
		Charset:   domain.CharsetNameDigits,
		MaxLength: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	passwords, _ := b.Start(ctx)

	var results []string
	for password := range passwords {
		results = append(results, password)
	}

	// Length one first, then the two-character block in lexicographic order.
	if results[9] != "9" || results[10] != "00" || results[11] != "01" {
		t.Errorf("Unexpected ordering around the length boundary: %v", results[8:12])
	}
}

func TestBruteForce_Stop(t *testing.T) {
	b := NewBruteForce()
	b.SetConfig(domain.AttackConfig{
		Charset:   domain.CharsetNameLower,
		MaxLength: 3,
	})

	passwords, _ := b.Start(context.Background())

	done := make(chan struct{})
	go func() {
		for range passwords {
		}
		close(done)
	}()

	b.Stop()
	b.Stop() // Stop is idempotent

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("Stop() didn't terminate password generation")
	}
}

func TestBruteForce_Progress(t *testing.T) {
	b := NewBruteForce()
	b.SetConfig(domain.AttackConfig{
		Charset:   domain.CharsetNameDigits,
		MaxLength: 1,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	passwords, _ := b.Start(ctx)
	for range passwords {
	}

	if progress := b.Progress(); progress != 100 {
		t.Errorf("Progress() = %v, want 100 after exhaustion", progress)
	}
}

func TestBruteForce_Mode(t *testing.T) {
	b := NewBruteForce()
	if b.Mode() != domain.ModeBruteForce {
		t.Errorf("Mode() = %v, want %v", b.Mode(), domain.ModeBruteForce)
	}
}

func TestKeyspaceSize(t *testing.T) {
	tests := []struct {
		charsetLen int
		maxLength  int
		want       float64
	}{
		{2, 2, 6},
		{10, 2, 110},
		{26, 1, 26},
	}

	for _, tt := range tests {
		if got := keyspaceSize(tt.charsetLen, tt.maxLength); got != tt.want {
			t.Errorf("keyspaceSize(%d, %d) = %v, want %v", tt.charsetLen, tt.maxLength, got, tt.want)
		}
	}
}
