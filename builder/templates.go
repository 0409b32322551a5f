// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package builder

import (
	"strings"
	"text/template"
)

var archetypeTemplates = map[Archetype]*template.Template{
	Token:  template.Must(template.New("Token").Parse(tokenTemplate)),
	Voting: template.Must(template.New("Voting").Parse(votingTemplate)),
	Oracle: template.Must(template.New("Oracle").Parse(oracleTemplate)),
}

// SynthesizeFromArchetype returns the hand written example for [a] with the
// class named [name]. Unknown archetypes get the Token example.
func SynthesizeFromArchetype(a Archetype, name string) string {
	if name == "" {
		name = defaultContractName
	}
	tmpl, ok := archetypeTemplates[a]
	if !ok {
		tmpl = archetypeTemplates[Token]
	}

	var b strings.Builder
	// The templates only reference .Name, execution cannot fail.
	_ = tmpl.Execute(&b, struct{ Name string }{Name: name})
	return b.String()
}

const tokenTemplate = `#include <qpi.h>

class {{.Name}} {
private:
    uint64_t totalSupply;
    map<PublicKey, uint64_t> balances;

public:
    {{.Name}}(uint64_t _totalSupply) : totalSupply(_totalSupply) {
        balances[getOrigin()] = _totalSupply;
    }

    uint64_t balanceOf(const PublicKey& account) const {
        auto it = balances.find(account);
        return it != balances.end() ? it->second : 0;
    }

    bool transfer(const PublicKey& to, uint64_t amount) {
        PublicKey from = getOrigin();
        if (balances[from] < amount) {
            return false;
        }
        balances[from] -= amount;
        balances[to] += amount;
        return true;
    }

    uint64_t getTotalSupply() const {
        return totalSupply;
    }
};

TOKEN_EXPORT({{.Name}});
`

const votingTemplate = `#include <qpi.h>

struct Proposal {
    string title;
    string description;
    uint64_t deadline;
    uint64_t yesVotes;
    uint64_t noVotes;
    bool active;
    PublicKey creator;
};

class {{.Name}} {
private:
    vector<Proposal> proposals;
    map<uint32_t, map<PublicKey, bool>> hasVoted;

public:
    uint32_t createProposal(const string& title, const string& description, uint64_t duration) {
        Proposal proposal;
        proposal.title = title;
        proposal.description = description;
        proposal.deadline = getCurrentTick() + duration;
        proposal.yesVotes = 0;
        proposal.noVotes = 0;
        proposal.active = true;
        proposal.creator = getOrigin();
        proposals.push_back(proposal);
        return proposals.size() - 1;
    }

    bool vote(uint32_t proposalId, bool support) {
        if (proposalId >= proposals.size()) {
            return false;
        }
        Proposal& proposal = proposals[proposalId];
        PublicKey voter = getOrigin();
        if (!proposal.active || hasVoted[proposalId][voter]) {
            return false;
        }
        hasVoted[proposalId][voter] = true;
        if (support) {
            proposal.yesVotes++;
        } else {
            proposal.noVotes++;
        }
        return true;
    }

    Proposal getProposal(uint32_t proposalId) const {
        if (proposalId < proposals.size()) {
            return proposals[proposalId];
        }
        return Proposal();
    }
};

VOTING_EXPORT({{.Name}});
`

const oracleTemplate = `#include <qpi.h>

struct PriceData {
    uint64_t price;
    uint64_t timestamp;
    bool valid;
};

class {{.Name}} {
private:
    map<string, PriceData> prices;
    PublicKey oracleOperator;

public:
    {{.Name}}(const PublicKey& _operator) : oracleOperator(_operator) {}

    bool updatePrice(const string& symbol, uint64_t price) {
        if (getOrigin() != oracleOperator) {
            return false;
        }
        PriceData data;
        data.price = price;
        data.timestamp = getCurrentTick();
        data.valid = true;
        prices[symbol] = data;
        return true;
    }

    PriceData getPrice(const string& symbol) const {
        auto it = prices.find(symbol);
        if (it != prices.end()) {
            return it->second;
        }
        return PriceData{0, 0, false};
    }

    bool isPriceValid(const string& symbol, uint64_t maxAge) const {
        auto it = prices.find(symbol);
        if (it != prices.end()) {
            uint64_t age = getCurrentTick() - it->second.timestamp;
            return it->second.valid && age <= maxAge;
        }
        return false;
    }
};

ORACLE_EXPORT({{.Name}});
`
