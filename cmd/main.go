package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"threatScoringBackend/internal/adapter/memory"
	"threatScoringBackend/internal/config"
	"threatScoringBackend/internal/core/domain"
	"threatScoringBackend/internal/core/hashes"
	"threatScoringBackend/internal/core/service"
	"threatScoringBackend/internal/pkg/debug"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	debug.Reinitialize()

	var (
		password  = flag.String("password", "", "password to analyze")
		name      = flag.String("name", "", "target name used for metadata-aware checks")
		dob       = flag.String("dob", "", "target date of birth, YYYY-MM-DD")
		interests = flag.String("interests", "", "comma-separated target interests")

		targetHash  = flag.String("hash", "", "hash digest to run an attack simulation against")
		mode        = flag.String("mode", string(domain.ModeDictionary), "attack mode: dictionary, brute_force, hybrid, ai_guided")
		hashType    = flag.String("hash-type", "", "hash algorithm, detected from the digest when empty")
		userID      = flag.String("user", "", "user ID for profile-guided attacks")
		maxAttempts = flag.Int64("max-attempts", 0, "attempt cap, 0 uses the configured default")
		maxLength   = flag.Int("max-length", 0, "brute-force candidate length cap")
		charset     = flag.String("charset", "", "brute-force charset name")

		emailSubject = flag.String("email-subject", "", "email subject to classify")
		emailBody    = flag.String("email-body", "", "email body to classify")
		emailSender  = flag.String("email-sender", "", "email sender address")

		callScript   = flag.String("call-script", "", "call transcript to classify")
		callerID     = flag.String("caller-id", "", "caller ID of the call")
		callDuration = flag.Float64("call-duration", 0, "call duration in seconds")

		timeout = flag.Duration("timeout", time.Minute, "overall deadline for the requested operation")
	)
	flag.Parse()

	cfg := config.New()
	svc, err := service.New(cfg, memory.NewSessionStore(), memory.NewProfileStore(), hashes.NewService())
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	metadata := domain.TargetMetadata{
		Name:        *name,
		DateOfBirth: *dob,
	}
	if *interests != "" {
		metadata.Interests = strings.Split(*interests, ",")
	}

	switch {
	case *password != "":
		assessment, err := svc.AssessPassword(ctx, *password, metadata)
		if err != nil {
			return err
		}
		return printJSON(assessment)

	case *targetHash != "":
		session, err := svc.RunAttack(ctx, *targetHash, domain.AttackConfig{
			Mode:        domain.AttackMode(*mode),
			HashType:    domain.HashType(*hashType),
			Metadata:    metadata,
			UserID:      *userID,
			MaxAttempts: *maxAttempts,
			MaxLength:   *maxLength,
			Charset:     domain.CharsetName(*charset),
			Timeout:     *timeout,
		})
		if err != nil {
			return err
		}
		return printJSON(session)

	case *emailBody != "" || *emailSubject != "":
		assessment, err := svc.ClassifyPhishing(ctx, domain.PhishingEmail{
			Subject: *emailSubject,
			Body:    *emailBody,
			Sender:  *emailSender,
		})
		if err != nil {
			return err
		}
		return printJSON(assessment)

	case *callScript != "":
		assessment, err := svc.ClassifyVishing(ctx, domain.VishingCall{
			Script:   *callScript,
			CallerID: *callerID,
			Duration: *callDuration,
		})
		if err != nil {
			return err
		}
		return printJSON(assessment)

	default:
		flag.Usage()
		return fmt.Errorf("nothing to do: pass -password, -hash, -email-body or -call-script")
	}
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
