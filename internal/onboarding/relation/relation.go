// Package relation maintains the client/branch relations of a customer.
package relation

import (
	"time"

	"onboard/internal/onboarding/models"
	id "onboard/pkg/domain"
)

// Input is one invite's view of the relation.
type Input struct {
	Client    id.ClientID
	Branch    id.BranchID
	Type      models.EntityType
	Channel   string
	Source    string
	Notes     string
	Email     string
	Phone     string
	InvitedBy id.UserID
	Product   string
	Country   string
}

type Result struct {
	Added   bool
	Changed bool
}

// Upsert adds the relation for (in.Client, in.Branch) or updates the existing one, then
// refreshes the invite metadata. Repeating the same input is a no-op on relations.
func Upsert(c *models.Customer, in Input, now time.Time) Result {
	var res Result
	idx := -1
	for i := range c.Relations {
		if c.Relations[i].Matches(in.Client, in.Branch) {
			idx = i
			break
		}
	}

	if idx >= 0 {
		rel := &c.Relations[idx]
		res.Changed = setIfChanged(&rel.Source, in.Source)
		res.Changed = setIfChanged(&rel.Notes, in.Notes) || res.Changed
		res.Changed = setIfChanged(&rel.OnboardingChannel, in.Channel) || res.Changed
		if in.Type != "" && rel.Type != in.Type {
			rel.Type = in.Type
			res.Changed = true
		}
		if !rel.Active {
			rel.Active = true
			res.Changed = true
		}
	} else {
		typ := in.Type
		if typ == "" {
			typ = models.EntityIndividual
		}
		source := in.Source
		if source == "" {
			source = models.DefaultSource
		}
		c.Relations = append(c.Relations, models.Relation{
			Client:            in.Client,
			Branch:            in.Branch,
			Type:              typ,
			OnboardingChannel: in.Channel,
			RegisteredAt:      now,
			Source:            source,
			Notes:             in.Notes,
			Active:            true,
		})
		res.Added = true
	}

	refreshMetadata(c, in)
	if res.Added || res.Changed {
		c.UpdatedAt = now
	}
	return res
}

func setIfChanged(dst *string, v string) bool {
	if v == "" || *dst == v {
		return false
	}
	*dst = v
	return true
}

func refreshMetadata(c *models.Customer, in Input) {
	if c.Metadata == nil {
		c.Metadata = models.Metadata{}
	}
	c.Metadata.SetMeta(models.MetaEmail, in.Email)
	c.Metadata.SetMeta(models.MetaPhone, in.Phone)
	c.Metadata.SetMeta(models.MetaClient, in.Client.String())
	branch := ""
	if !in.Branch.IsNil() {
		branch = in.Branch.String()
	}
	c.Metadata.SetMeta(models.MetaBranch, branch)
	invitedBy := ""
	if !in.InvitedBy.IsNil() {
		invitedBy = in.InvitedBy.String()
	}
	c.Metadata.SetMeta(models.MetaInvitedBy, invitedBy)
	if in.Product != "" {
		c.Metadata[models.MetaProduct] = in.Product
	}
	if in.Country != "" {
		c.Metadata[models.MetaCountry] = in.Country
	}
	if in.Channel != "" {
		c.Metadata[models.MetaChannel] = in.Channel
	}
}
