// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Rather API server.

Rather is a would-you-rather polling service: every question has exactly two
options, users vote for one side or withdraw their vote, and the home feed
lists the most recent questions across the whole dataset.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATASET_START_DATE=2020-01-01 JWKS_URL=https://... go run main.go

Or with flags:

	go run main.go -p 3319 -dataset-start 2020-01-01 -jwks-url "https://..."

# Configuration

Required settings:

  - DATASET_START_DATE (-dataset-start): earliest day date listings reach
  - JWKS_URL (-jwks-url): identity provider JWKS document URL

Optional settings:

  - PORT (-p): Server port (default: 3319)
  - DYNAMO_ENDPOINT (-dynamo-endpoint): local DynamoDB endpoint override

# Architecture

The server uses a layered architecture with dependency injection:

  - handlers: HTTP request handlers (questions, users, avatars)
  - router: Route definitions using Go 1.22+ routing
  - middleware: auth, CORS, logging, JSON helpers
  - service: question lifecycle, voting, date-paged listing engine
  - repository: typed access to the three tables
  - store: DynamoDB client wrapper plus an in-memory fake for tests
  - stream: record-change feed consumer keeping the date index consistent
  - models: domain and request/response types
  - auth: bearer token verification against the provider's JWKS
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
