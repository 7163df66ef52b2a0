// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ClientProfileTable represents the 'clients.profile' table
type ClientProfileTable struct {
	Table     string
	AccountID string
	FirstName string
	LastName  string
	Username  string
	CreatedAt string
	UpdatedAt string
}

// ClientProfile is the schema definition for clients.profile
var ClientProfile = ClientProfileTable{
	Table:     "clients.profile",
	AccountID: "accountid",
	FirstName: "firstname",
	LastName:  "lastname",
	Username:  "username",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
