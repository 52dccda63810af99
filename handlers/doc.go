// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Rather API.

# Handler Types

Each handler is a struct holding the services it fronts:

  - QuestionHandler: question lifecycle, voting, and date-paged listing
  - UserHandler: profile management
  - AvatarHandler: presigned avatar uploads

Handlers are created via constructor functions:

	questionHandler := handlers.NewQuestionHandler(questionService)

# Questions

	POST   /questions                → CreateQuestion
	GET    /questions/{id}           → GetQuestion
	DELETE /questions/{id}           → DeleteQuestion (author only)
	GET    /questions                → GetQuestionsByDate
	GET    /authors/{id}/questions   → GetQuestionsByAuthor
	POST   /questions/{id}/votes     → CastVote

GetQuestionsByDate takes questionCreateDate, limit, and an optional resume
cursor (lastEvaluatedDate + lastEvaluatedCreatedAt, both or neither). When
the named day holds fewer records than the limit, earlier days are walked
automatically; a short page means the dataset ran out.

# Users

	GET   /users/me    → GetMe
	POST  /users/me    → CreateMe
	PATCH /users/me    → RenameMe
	GET   /users/{id}  → GetUser
	POST  /users/batch → BatchGetUsers

# Avatars

	GET /users/me/avatar-upload-url?ext=png → GetUploadURL

Returns a short-lived presigned PUT URL plus the public URL the avatar will
have once uploaded. Only jpg, jpeg, and png are accepted.

All routes except GET /questions/{id} and the listings require a verified
bearer token; the caller's identity always comes from the token subject,
never from the request body.
*/
package handlers
