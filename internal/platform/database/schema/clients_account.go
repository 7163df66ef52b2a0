// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ClientAccountTable represents the 'clients.account' table
type ClientAccountTable struct {
	Table        string
	ID           string
	Email        string
	PasswordHash string
	Role         string
	RefreshToken string
	CreatedAt    string
	UpdatedAt    string
}

// ClientAccount is the schema definition for clients.account
var ClientAccount = ClientAccountTable{
	Table:        "clients.account",
	ID:           "id",
	Email:        "email",
	PasswordHash: "passwordhash",
	Role:         "role",
	RefreshToken: "refreshtoken",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}
