package resolver

// Schema is the GraphQL schema served by the query layer. Monetary
// amounts and big integers are transported as decimal strings so no
// precision is lost in JSON.
const Schema = `
    schema {
        query: Query
    }

    type Query {
        # BlockNumber is the height of the latest mined block.
        blockNumber: Int!
        # Block fetches a block by number, hash, or tag; null when no such block exists.
        block(identifier: String!): Block
        # Transaction fetches a transaction by hash; null when unknown.
        transaction(hash: String!): Transaction
        # TransactionReceipt fetches the receipt of a mined transaction; null while pending or unknown.
        transactionReceipt(hash: String!): Receipt
        # Balance is the account balance in ether, as a decimal string.
        balance(address: String!): String!
        # GasPrice is the suggested gas price in gwei; "0" when unavailable.
        gasPrice: String!
        # Network identifies the connected chain.
        network: Network!
        # TransactionCount is the pending nonce of an account.
        transactionCount(address: String!): Int!
        # Certificates lists the certificates owned by an address, with
        # best-effort off-chain metadata unless withMetadata is false.
        certificates(owner: String!, withMetadata: Boolean): [Certificate!]!
    }

    type Block {
        number: String!
        hash: String!
        parentHash: String!
        timestamp: String!
        miner: String!
        gasLimit: String!
        gasUsed: String!
        baseFeePerGas: String
        transactions: [String!]!
    }

    type Transaction {
        hash: String!
        from: String!
        to: String
        # Value in ether, as a decimal string.
        value: String!
        gas: String!
        # GasPrice in gwei; null for EIP-1559 transactions.
        gasPrice: String
        maxFeePerGas: String
        maxPriorityFeePerGas: String
        nonce: Int!
        data: String!
        chainId: String!
        blockNumber: String
        blockHash: String
    }

    type Receipt {
        transactionHash: String!
        blockNumber: String!
        blockHash: String!
        from: String!
        to: String
        cumulativeGasUsed: String!
        gasUsed: String!
        # Status is 0 for failed and 1 for successful execution.
        status: Int!
        contractAddress: String
        logs: [Log!]!
    }

    type Log {
        address: String!
        topics: [String!]!
        data: String!
        index: Int!
    }

    type Network {
        name: String!
        chainId: String!
    }

    type Certificate {
        name: String!
        certificateId: String!
        course: String!
        issuer: String!
        dateIssued: String!
        completionDate: String!
        creditHours: String!
        tokenUri: String
        # Metadata is the raw off-chain JSON document, when it resolved.
        metadata: String
    }
`
