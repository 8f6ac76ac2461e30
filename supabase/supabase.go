package supabase

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/supabase-community/supabase-go"
)

// These two vars are empty by default. We will override them via -ldflags in production builds.
var (
	embeddedSupabaseURL string
	embeddedSupabaseKey string
)

// NewSupabaseClient builds the client used for cloud project backups.
// An error means backups stay disabled; the local save flow is not affected.
func NewSupabaseClient() (*supabase.Client, error) {
	if embeddedSupabaseURL != "" && embeddedSupabaseKey != "" {
		return supabase.NewClient(embeddedSupabaseURL, embeddedSupabaseKey, nil)
	}

	// A missing .env file is fine as long as the variables are already
	// in the environment.
	_ = godotenv.Load()

	supabaseURL := os.Getenv("BLOCKPAD_SUPABASE_URL")
	supabaseKey := os.Getenv("BLOCKPAD_SUPABASE_KEY")

	if supabaseURL == "" || supabaseKey == "" {
		return nil, fmt.Errorf("BLOCKPAD_SUPABASE_URL and BLOCKPAD_SUPABASE_KEY must be set for cloud backups")
	}

	return supabase.NewClient(supabaseURL, supabaseKey, nil)
}
